package portal

import "github.com/kirinyoku/shootplan/internal/domain"

// Step is the single ordinal shown to the customer. It is never stored.
type Step int

const (
	StepInquiry      Step = 0
	StepProposal     Step = 1
	StepAwaitPayment Step = 2
	StepReadyToShoot Step = 3
	StepProofSelect  Step = 4
	StepEditing      Step = 5
	StepDelivered    Step = 6

	MinStep = StepInquiry
	MaxStep = StepDelivered
)

var stepLabels = [...]string{
	StepInquiry:      "inquiry",
	StepProposal:     "proposal",
	StepAwaitPayment: "awaiting_payment",
	StepReadyToShoot: "ready_to_shoot",
	StepProofSelect:  "proof_selection",
	StepEditing:      "editing",
	StepDelivered:    "delivered",
}

func (s Step) String() string {
	if s < MinStep || s > MaxStep {
		return "unknown"
	}
	return stepLabels[s]
}

// rule is one row of the decision table. A project status listed in
// byProject wins; otherwise the payment flag picks between paid and unpaid.
type rule struct {
	byProject map[domain.ProjectStatus]Step
	paid      Step
	unpaid    Step
}

var decisionTable = map[domain.LeadStatus]rule{
	domain.LeadCancelled: {
		paid:   StepInquiry,
		unpaid: StepInquiry,
	},
	domain.LeadCompleted: {
		byProject: map[domain.ProjectStatus]Step{
			domain.ProjectProofReady: StepProofSelect,
			domain.ProjectEditing:    StepEditing,
			domain.ProjectDelivered:  StepDelivered,
		},
		paid:   StepDelivered,
		unpaid: StepDelivered,
	},
	domain.LeadContracted: {
		byProject: map[domain.ProjectStatus]Step{
			domain.ProjectProofReady: StepProofSelect,
			domain.ProjectEditing:    StepEditing,
			domain.ProjectDelivered:  StepDelivered,
			domain.ProjectCompleted:  StepDelivered,
		},
		paid:   StepReadyToShoot,
		unpaid: StepAwaitPayment,
	},
	domain.LeadProposal: {
		paid:   StepProposal,
		unpaid: StepProposal,
	},
	domain.LeadConsultation: {
		paid:   StepInquiry,
		unpaid: StepInquiry,
	},
	domain.LeadInquiry: {
		paid:   StepInquiry,
		unpaid: StepInquiry,
	},
}

// DeriveStep maps the lead status, the project status and the payment flag to
// the customer-facing step. It is total: unknown lead statuses map to
// StepInquiry and unknown project statuses fall through to the payment flag.
func DeriveStep(lead domain.LeadStatus, project domain.ProjectStatus, paymentCompleted bool) Step {
	r, ok := decisionTable[lead]
	if !ok {
		return StepInquiry
	}

	if s, ok := r.byProject[project]; ok {
		return s
	}

	if paymentCompleted {
		return r.paid
	}
	return r.unpaid
}
