package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kmeehan/nestegg/internal/api"
	"github.com/kmeehan/nestegg/internal/calculation"
	"github.com/kmeehan/nestegg/internal/config"
	"github.com/kmeehan/nestegg/internal/domain"
	"github.com/kmeehan/nestegg/internal/output"
	"github.com/kmeehan/nestegg/internal/waterfall"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "nestegg",
	Short: "Personal finance planning engine CLI",
	Long:  "Deterministic income allocation, savings waterfall, and net-worth projection",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "nestegg %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

var planCmd = &cobra.Command{
	Use:   "plan [profile-file]",
	Short: "Run the full pipeline: allocate, waterfall, simulate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		engine := newEngine(cmd)

		change := changeFromFlags(cmd)
		result, err := engine.BuildPlan(*profile, change)
		if err != nil {
			log.Fatal(err)
		}

		emit(cmd, result)
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate [profile-file]",
	Short: "Run only the pay-period income allocator",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		result := calculation.Allocate(profile.Income)

		fmt.Printf("Needs:   %s\n", output.FormatCurrency(result.Needs))
		fmt.Printf("Wants:   %s\n", output.FormatCurrency(result.Wants))
		fmt.Printf("Savings: %s\n", output.FormatCurrency(result.Savings))
		for _, n := range result.Notes {
			fmt.Printf("Note:    %s\n", n.Message)
		}
	},
}

var waterfallCmd = &cobra.Command{
	Use:   "waterfall [profile-file]",
	Short: "Run only the monthly savings waterfall",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		engine := newEngine(cmd)

		alloc := calculation.Allocate(profile.Income)
		budget := alloc.Savings.Mul(profile.MonthlyFactor()).Round(2)

		facts := profile.Facts
		if len(profile.Debts) > 0 {
			facts.HighAprDebtBalance = domain.HighAprBalance(profile.Debts)
		}

		var breakdown domain.SavingsBreakdown
		if change := changeFromFlags(cmd); change != nil {
			breakdown = waterfall.ApplyChange(budget, facts, engine.Policy, *change)
		} else {
			breakdown = waterfall.Run(budget, facts, engine.Policy)
		}

		fmt.Printf("Budget:           %s\n", output.FormatCurrency(budget))
		fmt.Printf("401(k) match:     %s\n", output.FormatCurrency(breakdown.Match401k))
		fmt.Printf("HSA:              %s\n", output.FormatCurrency(breakdown.HSA))
		fmt.Printf("Emergency fund:   %s\n", output.FormatCurrency(breakdown.EmergencyFund))
		fmt.Printf("High-APR debt:    %s\n", output.FormatCurrency(breakdown.Debt))
		fmt.Printf("Retirement (%s): %s\n", breakdown.RetirementAcct, output.FormatCurrency(breakdown.Retirement))
		fmt.Printf("Brokerage:        %s\n", output.FormatCurrency(breakdown.Brokerage))
		fmt.Printf("Unallocated:      %s\n", output.FormatCurrency(breakdown.Unallocated))
		for _, w := range breakdown.Warnings {
			fmt.Printf("Warning:          %s\n", w.Message)
		}
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [profile-file]",
	Short: "Run the full pipeline and print the projection as CSV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		engine := newEngine(cmd)

		result, err := engine.BuildPlan(*profile, nil)
		if err != nil {
			log.Fatal(err)
		}

		data, err := output.CSVFormatter{}.Format(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [profile-file]",
	Short: "Validate a profile file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Profile file %s is valid\n", args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planning engine over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			logger.SetLevel(level)
		}

		port, _ := cmd.Flags().GetString("port")
		if env := os.Getenv("PORT"); env != "" && !cmd.Flags().Changed("port") {
			port = env
		}
		rateLimit, _ := cmd.Flags().GetFloat64("rate-limit")

		server := api.NewServer(calculation.NewPlanEngine(), logger, api.Config{
			Port:      port,
			RateLimit: rateLimit,
		})
		if err := server.ListenAndServe(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	},
}

func loadProfile(path string) *domain.Profile {
	profile, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return profile
}

func newEngine(cmd *cobra.Command) *calculation.PlanEngine {
	engine := calculation.NewPlanEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

// changeFromFlags builds a plan-change request from --pin/--delta/--target,
// or nil when no pin is requested.
func changeFromFlags(cmd *cobra.Command) *domain.Change {
	pin, _ := cmd.Flags().GetString("pin")
	if pin == "" {
		return nil
	}

	change := &domain.Change{Category: domain.Category(pin)}
	if cmd.Flags().Changed("target") {
		target, _ := cmd.Flags().GetString("target")
		d, err := decimal.NewFromString(target)
		if err != nil {
			log.Fatalf("invalid --target value %q: %v", target, err)
		}
		change.TargetMonthly = &d
	} else {
		deltaStr, _ := cmd.Flags().GetString("delta")
		d, err := decimal.NewFromString(deltaStr)
		if err != nil {
			log.Fatalf("invalid --delta value %q: %v", deltaStr, err)
		}
		change.Delta = d
	}

	if err := config.NewInputParser().ValidateChange(change); err != nil {
		log.Fatal(err)
	}
	return change
}

func emit(cmd *cobra.Command, result *domain.PlanResult) {
	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		log.Fatalf("unsupported format %q (supported: %v)", format, output.FormatterNames())
	}
	data, err := f.Format(result)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
}

func addChangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("pin", "", "Pin one bucket (ef, debt, retirementExtra, brokerage, 401k, hsa)")
	cmd.Flags().String("delta", "0", "Dollar delta applied to the pinned bucket")
	cmd.Flags().String("target", "", "Absolute monthly target for the pinned bucket (wins over --delta)")
}

func init() {
	planCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	planCmd.Flags().Bool("debug", false, "Enable debug output")
	addChangeFlags(planCmd)

	waterfallCmd.Flags().Bool("debug", false, "Enable debug output")
	addChangeFlags(waterfallCmd)

	simulateCmd.Flags().Bool("debug", false, "Enable debug output")

	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().Float64("rate-limit", 50, "Requests per second allowed (0 disables limiting)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(waterfallCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
