package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/calculation"
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli carries the settings resolved before any command runs
type cli struct {
	settings config.Settings
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "quotecalc",
		Short: "Insurance premium quote calculator",
		Long: `Prices a main life product with per-insured riders and the premium waiver,
illustrates premiums year by year and converts them to installment plans.

Defaults can be set in a .env file or the environment:
  QUOTECALC_RATES, QUOTECALC_REFERENCE_DATE, QUOTECALC_FORMAT,
  QUOTECALC_DEBUG, QUOTECALC_ENV`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var envFile string
			if cmd.Flags().Changed("env-file") {
				envFile, _ = cmd.Flags().GetString("env-file")
			}
			settings, err := config.LoadSettings(envFile)
			if err != nil {
				return err
			}
			c.settings = settings
			return nil
		},
	}

	root.PersistentFlags().String("rates", "", "Rate table YAML (default: embedded sample rates)")
	root.PersistentFlags().String("reference-date", "", "Date ages are computed against (YYYY-MM-DD or DD/MM/YYYY)")
	root.PersistentFlags().String("env-file", config.DefaultEnvFile, "Environment file with QUOTECALC_* defaults; a missing default file is ignored")
	root.PersistentFlags().Bool("debug", false, "Log engine decisions to stderr")

	root.AddCommand(c.quoteCmd())
	root.AddCommand(c.projectCmd())
	root.AddCommand(c.frequencyCmd())
	root.AddCommand(c.eligibilityCmd())
	root.AddCommand(c.occupationCmd())
	root.AddCommand(c.validateCmd())
	root.AddCommand(c.compareCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quotecalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().String("frequency", "", "Payment frequency (annual, semiannual, quarterly)")
}

func (c *cli) quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [request-file]",
		Short: "Price a quote request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, tables, err := c.engine(cmd)
			if err != nil {
				return err
			}
			quote, err := c.loadQuote(cmd, tables, args[0])
			if err != nil {
				return err
			}
			snap, err := engine.CalculateWithFrequency(quote.Policy, quote.Frequency)
			if err != nil {
				return rejected(err)
			}
			return c.render(cmd, &output.Report{Snapshot: snap})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func (c *cli) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [request-file]",
		Short: "Illustrate premiums year by year up to a target age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, tables, err := c.engine(cmd)
			if err != nil {
				return err
			}
			quote, err := c.loadQuote(cmd, tables, args[0])
			if err != nil {
				return err
			}
			snap, err := engine.CalculateWithFrequency(quote.Policy, quote.Frequency)
			if err != nil {
				return rejected(err)
			}
			proj, err := engine.Project(quote.Policy, calculation.ProjectionOptions{
				TargetAge: quote.TargetAge,
				Frequency: quote.Frequency,
			})
			if err != nil {
				return rejected(err)
			}
			return c.render(cmd, &output.Report{Snapshot: snap, Projection: proj})
		},
	}
	addOutputFlags(cmd)
	cmd.Flags().Int("target-age", 0, "Age of the main insured the illustration runs to (default: end of the payment term)")
	return cmd
}

func (c *cli) frequencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frequency [request-file]",
		Short: "Compare annual, semiannual and quarterly payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, tables, err := c.engine(cmd)
			if err != nil {
				return err
			}
			quote, err := c.loadQuote(cmd, tables, args[0])
			if err != nil {
				return err
			}
			snap, err := engine.Calculate(quote.Policy)
			if err != nil {
				return rejected(err)
			}
			return c.render(cmd, &output.Report{
				Snapshot:   snap,
				Comparison: calculation.CompareFrequencies(snap.MainTotal, snap.RiderTotal),
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request-file]",
		Short: "Check a quote request without printing the quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, tables, err := c.engine(cmd)
			if err != nil {
				return err
			}
			quote, err := c.loadQuote(cmd, tables, args[0])
			if err != nil {
				return err
			}
			snap, err := engine.Calculate(quote.Policy)
			if err != nil {
				return rejected(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Quote request %s is valid\n", args[0])
			for _, a := range snap.Advisories {
				fmt.Fprintf(out, "  note: %s\n", a)
			}
			return nil
		},
	}
}

func (c *cli) occupationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "occupation [query]",
		Short: "Search the occupation directory for risk groups",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := c.rates(cmd)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			limit, _ := cmd.Flags().GetInt("limit")
			matches := tables.SearchOccupations(query, limit)
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No occupation matches %q\n", query)
				return nil
			}
			for _, o := range matches {
				fmt.Fprintf(out, "%-40s group %d\n", o.Name, o.Group)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of matches (0 for all)")
	return cmd
}

func (c *cli) eligibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Show which products and riders a person can buy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := c.rates(cmd)
			if err != nil {
				return err
			}
			reference, err := config.ParseReferenceDate(c.referenceDate(cmd, ""))
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			dob, _ := cmd.Flags().GetString("dob")
			genderFlag, _ := cmd.Flags().GetString("gender")
			occupation, _ := cmd.Flags().GetString("occupation")
			riskGroup, _ := cmd.Flags().GetInt("risk-group")

			gender, err := domain.ParseGender(genderFlag)
			if err != nil {
				return err
			}
			profile, err := domain.NewCustomerProfile(name, dob, gender, reference)
			if err != nil {
				return err
			}
			profile.Occupation = occupation
			profile.RiskGroup = riskGroup
			if riskGroup == 0 && occupation != "" {
				profile.RiskGroup = tables.RiskGroup(occupation)
			}
			writeEligibility(cmd.OutOrStdout(), calculation.NewCalculationEngine(tables), profile)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Name shown in the report")
	cmd.Flags().String("dob", "", "Date of birth (DD/MM/YYYY)")
	cmd.Flags().String("gender", "male", "Gender (male, female)")
	cmd.Flags().String("occupation", "", "Occupation, resolved to a risk group via the directory")
	cmd.Flags().Int("risk-group", 0, "Risk group 1-4, overrides the occupation")
	_ = cmd.MarkFlagRequired("dob")
	return cmd
}

func writeEligibility(w io.Writer, engine *calculation.CalculationEngine, p domain.CustomerProfile) {
	r := engine.Eligibility
	age := p.Age()
	fmt.Fprintf(w, "ELIGIBILITY: %s age %d, %s, risk group %d\n", p.Name, age, p.Gender, p.RiskGroup)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	fmt.Fprintln(w, "Main products:")
	for _, product := range domain.Products {
		status := "no"
		if r.IsProductEligible(product, p) {
			status = "yes"
		}
		detail := ""
		switch {
		case product.HasPaymentTerm():
			lo, hi := r.PaymentTermBounds(product, age)
			detail = fmt.Sprintf("payment term %d-%d years", lo, hi)
		case len(r.AllowedTerms(product, age)) > 0:
			detail = fmt.Sprintf("terms %v years", r.AllowedTerms(product, age))
		}
		fmt.Fprintf(w, "  %-20s %-4s %s\n", product.DisplayName(), status, detail)
	}

	fmt.Fprintln(w, "Riders:")
	for _, rider := range domain.RiderKinds {
		status := "no"
		if r.IsRiderEligible(rider, p) {
			status = "yes"
		}
		window, _ := r.Window(rider)
		fmt.Fprintf(w, "  %-30s %-4s entry %d-%d, renewable to %d\n",
			rider.DisplayName(), status, window.EntryMin, window.EntryMax, window.RenewalMax)
	}

	status := "no"
	if r.IsWaiverBeneficiaryEligible(p) {
		status = "yes"
	}
	fmt.Fprintf(w, "  %-30s %-4s as beneficiary\n", domain.RiderWaiver.DisplayName(), status)
}

// rates loads the rate tables named by --rates or QUOTECALC_RATES
func (c *cli) rates(cmd *cobra.Command) (*ratetable.Tables, error) {
	path, _ := cmd.Flags().GetString("rates")
	if path == "" {
		path = c.settings.RatesPath
	}
	if path == "" {
		return ratetable.Default()
	}
	return ratetable.LoadFromFile(path)
}

func (c *cli) engine(cmd *cobra.Command) (*calculation.CalculationEngine, *ratetable.Tables, error) {
	tables, err := c.rates(cmd)
	if err != nil {
		return nil, nil, err
	}
	engine := calculation.NewCalculationEngine(tables)
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode || c.settings.Debug {
		engine.SetLogger(newLogger(c.settings.Env, cmd.ErrOrStderr()))
	}
	return engine, tables, nil
}

func (c *cli) referenceDate(cmd *cobra.Command, fromRequest string) string {
	if cmd.Flags().Changed("reference-date") {
		v, _ := cmd.Flags().GetString("reference-date")
		return v
	}
	if fromRequest != "" {
		return fromRequest
	}
	return c.settings.ReferenceDate
}

// loadRequest reads a request and applies command-line overrides
func (c *cli) loadRequest(cmd *cobra.Command, parser *config.InputParser, filename string) (*config.QuoteRequest, error) {
	req, err := parser.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	req.ReferenceDate = c.referenceDate(cmd, req.ReferenceDate)
	if f := cmd.Flags().Lookup("frequency"); f != nil && f.Changed {
		req.Frequency = f.Value.String()
	}
	if f := cmd.Flags().Lookup("target-age"); f != nil && f.Changed {
		req.TargetAge, _ = cmd.Flags().GetInt("target-age")
	}
	return req, nil
}

// loadQuote reads a request, applies overrides and builds engine inputs
func (c *cli) loadQuote(cmd *cobra.Command, tables *ratetable.Tables, filename string) (*config.Quote, error) {
	parser := config.NewInputParser(tables)
	req, err := c.loadRequest(cmd, parser, filename)
	if err != nil {
		return nil, err
	}
	return parser.BuildQuote(req)
}

func (c *cli) render(cmd *cobra.Command, report *output.Report) error {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = c.settings.Format
	}
	f := output.GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if save, _ := cmd.Flags().GetBool("save"); save {
		filename, err := output.WriteFormatted(f, report, output.ExtensionFor(f))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func rejected(err error) error {
	if calculation.IsValidationError(err) {
		return fmt.Errorf("quote rejected: %w", err)
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
