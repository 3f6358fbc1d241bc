package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/NickRemizov/face-review/internal/config"
	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/persistence"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a consistency audit across all people",
	Long: `Run a consistency audit of the recognition data: for every person,
count descriptors that disagree with the person's averaged face and report
them as outliers.

Examples:
  # Print the audit report
  face-review audit

  # Repair every flagged person and re-run the audit
  face-review audit --fix-all`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().Bool("fix-all", false, "Clear outliers for every flagged person, then re-audit")
}

func runAudit(cmd *cobra.Command, args []string) error {
	fixAll := mustGetBool(cmd, "fix-all")

	ctx := context.Background()
	cfg := config.Load()

	store, err := persistence.New(cfg.Gallery.URL, cfg.Gallery.Token)
	if err != nil {
		return fmt.Errorf("creating gallery client: %w", err)
	}

	fmt.Println("Running audit...")
	report, err := store.RunAudit(ctx)
	if err != nil {
		return fmt.Errorf("running audit: %w", err)
	}

	printAuditReport(report)

	if !fixAll {
		return nil
	}

	var flagged []faces.AuditResult
	for _, row := range report {
		if row.HasProblems {
			flagged = append(flagged, row)
		}
	}
	if len(flagged) == 0 {
		fmt.Println("\nNothing to fix.")
		return nil
	}

	fmt.Printf("\nClearing outliers for %d people...\n", len(flagged))
	bar := progressbar.NewOptions(len(flagged),
		progressbar.OptionSetDescription("Fixing people"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	var cleared, errorCount int
	for _, row := range flagged {
		result, err := store.ClearPersonOutliers(ctx, row.PersonID)
		if err != nil {
			fmt.Printf("\nWarning: failed to fix %s: %v\n", row.PersonName, err)
			errorCount++
			bar.Add(1)
			continue
		}
		cleared += result.ClearedCount
		bar.Add(1)
	}
	fmt.Println()

	fmt.Printf("\nCleared %d outliers (%d errors). Re-running audit...\n", cleared, errorCount)
	report, err = store.RunAudit(ctx)
	if err != nil {
		return fmt.Errorf("re-running audit: %w", err)
	}
	printAuditReport(report)
	return nil
}

func printAuditReport(report []faces.AuditResult) {
	summary := faces.SummarizeAudit(report)

	fmt.Printf("\n%-30s %8s %12s %10s %10s\n", "PERSON", "FACES", "DESCRIPTORS", "OUTLIERS", "EXCLUDED")
	for _, row := range report {
		marker := " "
		if row.HasProblems {
			marker = "!"
		}
		fmt.Printf("%s %-28s %8d %12d %10d %10d\n",
			marker, row.PersonName, row.FaceCount, row.DescriptorCount, row.OutlierCount, row.ExcludedCount)
	}

	fmt.Printf("\n%d people, %d faces, %d outliers, %d excluded, %d people flagged\n",
		summary.TotalPeople, summary.TotalFaces, summary.TotalOutliers,
		summary.TotalExcluded, summary.PeopleWithProblems)
}
