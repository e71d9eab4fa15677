package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"resultdesk/adapters/excel"
	"resultdesk/adapters/memory"
	"resultdesk/app"
	"resultdesk/domain/result"
	"resultdesk/internal"
	"resultdesk/internal/errors"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "resultdesk-cli",
		Short:         "Inspect result spreadsheets and preview marksheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInspectCmd(),
		newMarksheetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		os.Exit(1)
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the headers, record count and detected column roles of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func newMarksheetCmd() *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "marksheet FILE REGNO",
		Short: "Print the marksheet of one registration number from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarksheet(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], result.ClassLabel(class))
		},
	}
	cmd.Flags().StringVar(&class, "class", "10", "class label the file belongs to")
	return cmd
}

func runInspect(ctx context.Context, out io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.ReadError(err)
	}

	reader := excel.NewDataReader(excel.DefaultReaderConfig(), internal.NewLogger(internal.LogLevelWarn))
	sheet, err := reader.ReadFirstSheet(ctx, path, content)
	if err != nil {
		return errors.ParseError(err)
	}
	records, columns, err := result.BuildRecords(*sheet)
	if err != nil {
		return errors.EmptyFile()
	}
	roles := result.ClassifyColumns(columns)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Sheet:\t%s\n", sheet.Name)
	fmt.Fprintf(w, "Records:\t%d\n", len(records))
	fmt.Fprintf(w, "Columns:\t%s\n", strings.Join(columns, ", "))
	fmt.Fprintf(w, "Registration:\t%s\n", orNone(roles.RegistrationCol))
	fmt.Fprintf(w, "Name:\t%s\n", orNone(roles.NameCol))
	fmt.Fprintf(w, "Class:\t%s\n", orNone(roles.ClassCol))
	fmt.Fprintf(w, "Subjects:\t%s\n", orNone(strings.Join(roles.SubjectCols, ", ")))
	return w.Flush()
}

func runMarksheet(ctx context.Context, out io.Writer, path, regNo string, class result.ClassLabel) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.ReadError(err)
	}
	defer f.Close()

	logger := internal.NewLogger(internal.LogLevelWarn)
	classes := []result.ClassLabel{class}
	store := memory.NewResultStore()
	reader := excel.NewDataReader(excel.DefaultReaderConfig(), logger)

	ingestion := app.NewIngestionService(reader, store, nil, classes, 0, logger)
	if _, err := ingestion.Ingest(ctx, app.UploadRequest{Class: class, Filename: path, Content: f}); err != nil {
		return err
	}

	lookup := app.NewLookupService(store, classes, result.DefaultScoringPolicy(), logger)
	marksheet, err := lookup.Lookup(ctx, regNo)
	if err != nil {
		return err
	}

	printMarksheet(out, marksheet)
	return nil
}

func printMarksheet(out io.Writer, m *result.Marksheet) {
	fmt.Fprintf(out, "Name:             %s\n", m.Name)
	fmt.Fprintf(out, "Class:            %s\n", m.Class)
	fmt.Fprintf(out, "Registration No.: %s\n\n", m.RegistrationNo)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Subject\tMax\tObtained")
	for _, s := range m.Subjects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Subject, result.FormatNumber(s.MaxMarks), result.FormatNumber(s.Obtained))
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal:      %s\n", m.TotalText())
	fmt.Fprintf(out, "Percentage: %s%%\n", m.PercentageText())
	fmt.Fprintf(out, "Result:     %s\n", m.Status)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
