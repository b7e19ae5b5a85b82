package agent

import (
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewReconciler creates the expert that answers questions about the latest
// migration run. It is grounded with the rendered migration summary and
// audit report so its answers refer to actual record counts and findings.
func NewReconciler(summaryMD, auditMD string) *Expert {
	grounding := fmt.Sprintf(`
	You are a data-migration reconciliation expert for a banking ledger.
	The ledger was migrated from a document store to a relational store in
	dependency order: users, then accounts, then transactions, then derived
	transfer aggregates.

	The latest migration summary is:

	%s

	The latest audit report is:

	%s

	Answer the operator's questions about these reports. Failed records list
	the reason each record was skipped; balance findings are advisory and do
	not fail a migration. When the operator asks about a discrepancy, point
	at the specific records involved. Never invent counts that are not in
	the reports.
	`, summaryMD, auditMD)

	return &Expert{
		Name:        "Reconciler",
		Description: "Explains migration summaries and audit reports.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: grounding}}},
		},
	}
}
