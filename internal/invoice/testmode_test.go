package invoice_test

import (
	_ "github.com/sprier-tech/invoicedesk/testing"
)
