package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/dealerdesk/vehtax/internal/calculation"
	"github.com/dealerdesk/vehtax/internal/config"
	"github.com/dealerdesk/vehtax/internal/domain"
	"github.com/dealerdesk/vehtax/internal/output"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vehtax",
	Short: "Vehicle transaction tax calculator CLI",
	Long:  "Computes retail and lease transaction taxes for vehicle deals under per-state rule configurations",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate tax for a deal under a state's rules",
	Run: func(cmd *cobra.Command, args []string) {
		rulesFile, _ := cmd.Flags().GetString("rules")
		dealFile, _ := cmd.Flags().GetString("deal")
		format, _ := cmd.Flags().GetString("format")

		parser := config.NewInputParser()
		rules, err := parser.LoadRulesFromFile(rulesFile)
		if err != nil {
			log.Fatal(err)
		}
		doc, err := parser.LoadDealFromFile(dealFile)
		if err != nil {
			log.Fatal(err)
		}

		deal := doc.Deal
		if len(deal.RateComponents) == 0 && doc.Jurisdiction != nil {
			deal.RateComponents = calculation.BuildRateComponents(*doc.Jurisdiction)
		}

		result, err := calculation.CalculateTax(&deal, rules)
		if err != nil {
			log.Fatal(err)
		}
		if err := output.GenerateReport(os.Stdout, result, format); err != nil {
			log.Fatal(err)
		}
	},
}

var resolveContextCmd = &cobra.Command{
	Use:   "resolve-context",
	Short: "Resolve which state's rules govern a deal",
	Run: func(cmd *cobra.Command, args []string) {
		rooftopFile, _ := cmd.Flags().GetString("rooftop")
		buyerState, _ := cmd.Flags().GetString("buyer-state")
		registrationState, _ := cmd.Flags().GetString("registration-state")
		deliveryState, _ := cmd.Flags().GetString("delivery-state")

		parser := config.NewInputParser()
		rooftop, err := parser.LoadRooftopFromFile(rooftopFile)
		if err != nil {
			log.Fatal(err)
		}

		ctx := calculation.ResolveTaxContext(*rooftop, domain.DealPartyInfo{
			BuyerState:        buyerState,
			RegistrationState: registrationState,
			DeliveryState:     deliveryState,
		})
		fmt.Printf("Primary state:      %s\n", ctx.PrimaryState)
		fmt.Printf("Dealer state:       %s\n", ctx.DealerState)
		fmt.Printf("Buyer state:        %s\n", ctx.BuyerState)
		fmt.Printf("Registration state: %s\n", ctx.RegistrationState)
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "vehtax %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	calculateCmd.Flags().String("rules", "", "Path to the state rules YAML file")
	calculateCmd.Flags().String("deal", "", "Path to the deal YAML file")
	calculateCmd.Flags().String("format", "console", "Output format (console, json, yaml)")
	_ = calculateCmd.MarkFlagRequired("rules")
	_ = calculateCmd.MarkFlagRequired("deal")

	resolveContextCmd.Flags().String("rooftop", "", "Path to the rooftop YAML file")
	resolveContextCmd.Flags().String("buyer-state", "", "Buyer residence state code")
	resolveContextCmd.Flags().String("registration-state", "", "Registration state code")
	resolveContextCmd.Flags().String("delivery-state", "", "Delivery state code")
	_ = resolveContextCmd.MarkFlagRequired("rooftop")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(resolveContextCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
