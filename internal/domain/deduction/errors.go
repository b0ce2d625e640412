package deduction

import "errors"

var ErrDeductionsNotFound = errors.New("employment deductions record not found")
