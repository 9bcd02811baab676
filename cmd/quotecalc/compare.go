package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/compare"
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/transform"
	"github.com/spf13/cobra"
)

func (c *cli) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [request-file]",
		Short: "Compare a quote against what-if alternatives",
		Long: `Reprice a quote request under built-in templates or ad-hoc transforms
and compare what each alternative costs per year and over the illustration.

Examples:
  quotecalc compare quote.yaml --with quarterly,no_extra,no_waiver
  quotecalc compare quote.yaml --with no_hospital_cash --insured binh --format csv
  quotecalc compare quote.yaml --transform set_premium:amount=30000000 --transform set_payment_term:years=15
  quotecalc compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			insured, _ := cmd.Flags().GetString("insured")
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				if insured == "" {
					insured = "main"
				}
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates(insured)))
				fmt.Fprintf(out, "\nTransforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("request file required for comparison (use --list-templates to see available templates)")
			}

			withList, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(withList)
			if len(templates) == 0 && len(specs) == 0 {
				return fmt.Errorf("--with or --transform is required to build alternatives")
			}

			engine, tables, err := c.engine(cmd)
			if err != nil {
				return err
			}
			parser := config.NewInputParser(tables)
			req, err := c.loadRequest(cmd, parser, args[0])
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			set, err := compare.NewCompareEngine(parser, engine).Compare(cmd.Context(), req, compare.CompareOptions{
				BaseName:   baseName,
				Templates:  templates,
				Transforms: specs,
				InsuredID:  insured,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.RequestPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "csv":
				text, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)
			case "json":
				text, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, text)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			default:
				return fmt.Errorf("unknown output format %q (valid: table, compact, csv, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,...; repeat to combine into one alternative")
	cmd.Flags().String("base", "base", "Label of the unmodified request")
	cmd.Flags().String("insured", "", "Insured id targeted by per-insured templates (default: main)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available templates and transforms")
	return cmd
}
