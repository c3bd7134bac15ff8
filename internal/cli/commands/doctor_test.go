package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/internal/cli/testutil"
	coretest "github.com/lathaniel/alfa/internal/testutil"
)

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		checks   []HealthCheck
		runCount int
		minScore int
		maxScore int
	}{
		{
			name:     "no checks returns 100",
			checks:   nil,
			runCount: 10,
			minScore: 100,
			maxScore: 100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{RuleID: "AM01", Status: "pass", IssueCount: 0},
				{RuleID: "AR01", Status: "pass", IssueCount: 0},
			},
			runCount: 10,
			minScore: 100,
			maxScore: 100,
		},
		{
			name: "warnings reduce score",
			checks: []HealthCheck{
				{RuleID: "AM01", Status: "pass", IssueCount: 0},
				{RuleID: "AR02", Status: "warn", IssueCount: 2},
			},
			runCount: 10,
			minScore: 80,
			maxScore: 99,
		},
		{
			name: "errors reduce score more",
			checks: []HealthCheck{
				{RuleID: "AR01", Status: "error", IssueCount: 2},
			},
			runCount: 10,
			minScore: 70,
			maxScore: 80,
		},
		{
			name: "more runs means less impact per issue",
			checks: []HealthCheck{
				{RuleID: "AR02", Status: "warn", IssueCount: 5},
			},
			runCount: 200,
			minScore: 95,
			maxScore: 95,
		},
		{
			name: "many issues can reduce to 0",
			checks: []HealthCheck{
				{RuleID: "AR01", Status: "error", IssueCount: 20},
				{RuleID: "AC01", Status: "error", IssueCount: 20},
			},
			runCount: 5,
			minScore: 0,
			maxScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calculateHealthScore(tt.checks, tt.runCount)
			assert.GreaterOrEqual(t, score, tt.minScore, "score should be >= %d", tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore, "score should be <= %d", tt.maxScore)
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	for _, rule := range healthRules {
		t.Run(rule.id, func(t *testing.T) {
			assert.NotEmpty(t, getRecommendation(rule.id), "expected recommendation for %s", rule.id)
		})
	}
	assert.Empty(t, getRecommendation("UNKNOWN"))
}

func TestGenerateRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "AM01", Status: "warn", IssueCount: 1},
		{RuleID: "AR01", Status: "error", IssueCount: 2},
		{RuleID: "AR02", Status: "pass", IssueCount: 0},
	}

	recommendations := generateRecommendations(checks)

	assert.Len(t, recommendations, 2)
	assert.Contains(t, recommendations[0], "lock")
	assert.Contains(t, recommendations[1], "malformed")
}

func TestGenerateRecommendations_LimitTo5(t *testing.T) {
	checks := make([]HealthCheck, 0, len(healthRules))
	for _, rule := range healthRules {
		checks = append(checks, HealthCheck{RuleID: rule.id, Status: "warn", IssueCount: 1})
	}

	recommendations := generateRecommendations(checks)

	assert.Len(t, recommendations, 5)
}

func TestRunDoctor_Healthy(t *testing.T) {
	cfg, _ := testutil.SetupTestProject(t)

	tr := testutil.NewTestRendererJSON()
	require.NoError(t, runDoctor(newTestContext(t, cfg, tr)))

	var got DoctorOutput
	decodeJSON(t, tr, &got)
	assert.Equal(t, ModelSummary{Model: "TestModel", Tables: 2, Runs: 2}, got.Summary)
	assert.Equal(t, 100, got.Score)
	assert.Zero(t, got.IssueCount)
	assert.Empty(t, got.Recommendations)
	require.Len(t, got.HealthChecks, len(healthRules))
	for _, check := range got.HealthChecks {
		assert.Equal(t, "pass", check.Status, check.RuleID)
	}
}

func TestRunDoctor_Issues(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)
	md.WriteFile("TestModel.ain2.lock", "")
	md.AddRun("003", "<RunMetadata><Item Type=")
	md.Remove("TestModel.Run.002.Total.txt")
	md.AddRun("007", coretest.MetadataXML("ProjectionId=Proj.Other.42"))
	md.AddOutput("007", "Total", coretest.TSV([]string{"Period"}))
	md.WriteFile("TestModel.Run.001.Metadata.Backup.xml", coretest.MetadataXML("Description=copy"))
	md.WriteFile("fields.yaml", "Bond:\n  fields: [CUSIP]\n  output_dest: missing\n")
	cfg.UnusedKeys = []string{"modle"}

	tr := testutil.NewTestRendererJSON()
	require.NoError(t, runDoctor(newTestContext(t, cfg, tr)))

	var got DoctorOutput
	decodeJSON(t, tr, &got)

	status := make(map[string]string)
	for _, check := range got.HealthChecks {
		status[check.RuleID] = check.Status
	}
	assert.Equal(t, map[string]string{
		"AM01": "warn",
		"AR01": "error",
		"AR02": "warn",
		"AR03": "warn",
		"AR04": "warn",
		"AC01": "pass",
		"AC02": "warn",
		"AC03": "warn",
	}, status)
	assert.True(t, got.Summary.Locked)
	assert.Equal(t, 7, got.IssueCount)
	assert.Less(t, got.Score, 100)
	assert.Len(t, got.Recommendations, 5)
}

func TestRunDoctor_Markdown(t *testing.T) {
	cfg, md := testutil.SetupTestProject(t)
	md.WriteFile("fields.yaml", "Bond: []\n")

	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, runDoctor(newTestContext(t, cfg, tr)))

	out := tr.Output()
	assert.Contains(t, out, "# Model Health Report: TestModel")
	assert.Contains(t, out, "### Config")
	assert.Contains(t, out, "- **[ERROR]** AC01: Fields file is valid (1 issues)")
	assert.Contains(t, out, "- **[PASS]** AR01: Run metadata parses")
	testutil.AssertValidMarkdown(t, out)
}
