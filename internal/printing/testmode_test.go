package printing_test

import (
	_ "github.com/sprier-tech/invoicedesk/testing"
)
