package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/fields"
	"github.com/lathaniel/alfa/pkg/alfa"
	"github.com/spf13/cobra"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a health check on the model directory",
		Long: `Check the model directory for problems that make runs unreadable.

The doctor command resolves every run and reports:
- Model summary (tables, runs, lock state)
- Health checks grouped by category (Model, Runs, Config)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  alfa doctor

  # Output as JSON
  alfa doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(NewCommandContext(cmd))
		},
	}

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ModelSummary  `json:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
	IssueCount      int           `json:"issue_count"`
}

// ModelSummary contains model-level statistics.
type ModelSummary struct {
	Model  string `json:"model"`
	Tables int    `json:"tables"`
	Runs   int    `json:"runs"`
	Locked bool   `json:"locked"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

// doctorInput is everything the health rules look at, gathered once.
type doctorInput struct {
	model     *alfa.Model
	fileRuns  []string
	runs      map[string]*alfa.Run
	runErrs   map[string]error
	defs      *fields.Definitions
	defsErr   error
	unusedCfg []string
}

type healthRule struct {
	id             string
	name           string
	group          string
	isError        bool
	recommendation string
	check          func(in *doctorInput) []string
}

var healthRules = []healthRule{
	{
		id: "AM01", name: "Model is not locked", group: "model",
		recommendation: "Close the model in MG-ALFA or remove a stale lock file",
		check: func(in *doctorInput) []string {
			if in.model.Locked() {
				return []string{"lock file present: " + in.model.LockPath()}
			}
			return nil
		},
	},
	{
		id: "AR01", name: "Run metadata parses", group: "runs", isError: true,
		recommendation: "Re-export or remove runs whose metadata file is malformed",
		check: func(in *doctorInput) []string {
			var issues []string
			for _, id := range sortedKeys(in.runErrs) {
				issues = append(issues, fmt.Sprintf("run %s: %v", id, in.runErrs[id]))
			}
			return issues
		},
	},
	{
		id: "AR02", name: "Runs have an output table", group: "runs",
		recommendation: "Re-run projections that finished without writing an output table",
		check: func(in *doctorInput) []string {
			var issues []string
			for _, id := range sortedKeys(in.runs) {
				if _, err := in.runs[id].OutputPath(); err != nil {
					issues = append(issues, "run "+id+" has no output file")
				}
			}
			return issues
		},
	},
	{
		id: "AR03", name: "ProjectionId matches file name", group: "runs",
		recommendation: "Check runs copied between models; their ProjectionId no longer matches the file name",
		check: func(in *doctorInput) []string {
			var issues []string
			for _, id := range sortedKeys(in.runs) {
				if run := in.runs[id]; run.ID() != run.FileID() {
					issues = append(issues, fmt.Sprintf("run %s reports id %s", run.FileID(), run.ID()))
				}
			}
			return issues
		},
	},
	{
		id: "AR04", name: "One metadata file per run", group: "runs",
		recommendation: "Remove duplicate metadata files so each run has exactly one",
		check: func(in *doctorInput) []string {
			counts := make(map[string]int)
			for _, id := range in.fileRuns {
				counts[id]++
			}
			var issues []string
			for _, id := range sortedKeys(counts) {
				if counts[id] > 1 {
					issues = append(issues, fmt.Sprintf("run %s has %d metadata files", id, counts[id]))
				}
			}
			return issues
		},
	},
	{
		id: "AC01", name: "Fields file is valid", group: "config", isError: true,
		recommendation: "Fix the fields file so every asset input lists its fields",
		check: func(in *doctorInput) []string {
			if in.defsErr != nil {
				return []string{in.defsErr.Error()}
			}
			return nil
		},
	},
	{
		id: "AC02", name: "Asset output destinations exist", group: "config",
		recommendation: "Create the output_dest directories named in the fields file",
		check: func(in *doctorInput) []string {
			var issues []string
			for _, name := range in.defs.Names() {
				if _, err := in.defs.AssetInput(name); err != nil {
					issues = append(issues, fmt.Sprintf("asset %s: %v", name, err))
				}
			}
			return issues
		},
	},
	{
		id: "AC03", name: "No unknown config keys", group: "config",
		recommendation: "Remove or correct config keys alfa does not recognize",
		check: func(in *doctorInput) []string {
			issues := make([]string, 0, len(in.unusedCfg))
			for _, key := range in.unusedCfg {
				issues = append(issues, "unknown key: "+key)
			}
			return issues
		},
	},
}

func runDoctor(cmdCtx *CommandContext) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}

	in, summary, err := gatherDoctorInput(cmdCtx, model)
	if err != nil {
		return err
	}

	doctorOutput := buildDoctorOutput(in, summary)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func gatherDoctorInput(cmdCtx *CommandContext, model *alfa.Model) (*doctorInput, ModelSummary, error) {
	tables, err := model.Tables()
	if err != nil {
		return nil, ModelSummary{}, err
	}
	fileRuns, err := model.Runs()
	if err != nil {
		return nil, ModelSummary{}, err
	}
	distinct, err := model.DistinctRuns()
	if err != nil {
		return nil, ModelSummary{}, err
	}

	in := &doctorInput{
		model:     model,
		fileRuns:  fileRuns,
		runs:      make(map[string]*alfa.Run),
		runErrs:   make(map[string]error),
		unusedCfg: cmdCtx.Cfg.UnusedKeys,
	}
	for _, id := range distinct {
		run, err := model.Run(id)
		if err != nil {
			in.runErrs[id] = err
			continue
		}
		in.runs[id] = run
	}
	in.defs, in.defsErr = cmdCtx.LoadFields()

	summary := ModelSummary{
		Model:  model.Name(),
		Tables: len(tables),
		Runs:   len(distinct),
		Locked: model.Locked(),
	}
	return in, summary, nil
}

func buildDoctorOutput(in *doctorInput, summary ModelSummary) *DoctorOutput {
	healthChecks := make([]HealthCheck, 0, len(healthRules))
	issueCount := 0

	for _, rule := range healthRules {
		details := rule.check(in)
		status := "pass"
		if len(details) > 0 {
			if rule.isError {
				status = "error"
			} else {
				status = "warn"
			}
		}
		issueCount += len(details)

		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     rule.id,
			Name:       rule.name,
			Group:      rule.group,
			Status:     status,
			IssueCount: len(details),
			Details:    details,
		})
	}

	// Sort health checks by group then by rule ID
	sort.Slice(healthChecks, func(i, j int) bool {
		if healthChecks[i].Group != healthChecks[j].Group {
			return healthChecks[i].Group < healthChecks[j].Group
		}
		return healthChecks[i].RuleID < healthChecks[j].RuleID
	})

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           calculateHealthScore(healthChecks, summary.Runs),
		Recommendations: generateRecommendations(healthChecks),
		IssueCount:      issueCount,
	}
}

// calculateHealthScore computes a health score from 0-100.
// Errors cost twice as much as warnings, and each issue costs less in a
// model with many runs.
func calculateHealthScore(checks []HealthCheck, runCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if runCount > 10 {
		basePenalty = 3.0
	}
	if runCount > 50 {
		basePenalty = 2.0
	}
	if runCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	// Clamp to 0-100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns the recommendation for a rule.
func getRecommendation(ruleID string) string {
	for _, rule := range healthRules {
		if rule.id == ruleID {
			return rule.recommendation
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header.Render("Model Health Report: " + out.Summary.Model))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Subheader.Render("Summary"))
	r.Printf("   Tables: %d | Runs: %d | Locked: %t\n", out.Summary.Tables, out.Summary.Runs, out.Summary.Locked)
	r.Println("")

	r.Println(styles.Subheader.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Subheader.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Model Health Report: " + out.Summary.Model)
	r.Println("")

	r.Println("## Summary")
	r.Println("")
	r.Printf("- **Tables**: %d\n", out.Summary.Tables)
	r.Printf("- **Runs**: %d\n", out.Summary.Runs)
	r.Printf("- **Locked**: %t\n", out.Summary.Locked)
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
