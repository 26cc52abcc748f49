package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/pgrigo01/nfs-profile/pkg/common"
	"github.com/pgrigo01/nfs-profile/pkg/rest"
)

var (
	colorHeader = color.New(color.FgBlue, color.Bold).SprintFunc()
	colorField  = color.New(color.FgYellow).SprintFunc()
	colorBad    = color.New(color.FgRed, color.Bold).SprintFunc()

	tableColorHeader = tablewriter.Colors{tablewriter.FgBlueColor, tablewriter.Bold}
)

// violationsOf returns the validation errors in err, whether they were found
// locally or reported by a remote server.
func violationsOf(err error) []common.ValidationError {
	var restErr *rest.Error
	if errors.As(err, &restErr) {
		return restErr.Violations
	}

	if common.IsValidationError(err) {
		return common.ValidationErrors(err)
	}
	return nil
}
