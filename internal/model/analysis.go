package model

// ScopeMode controls how the agent-scope filter restricts the policy set.
type ScopeMode string

const (
	ScopeUnrestricted ScopeMode = "unrestricted"
	ScopeScoped       ScopeMode = "scoped"
)

// AgentScope is the externally computed allow-list of writing-agent numbers.
// The hierarchy traversal that produces it lives outside this engine.
type AgentScope struct {
	Mode                ScopeMode `json:"mode"`
	AllowedAgentNumbers []string  `json:"allowed_agent_numbers,omitempty"`
}

// Unrestricted reports whether the scope permits every policy.
func (s AgentScope) Unrestricted() bool {
	return s.Mode == "" || s.Mode == ScopeUnrestricted
}

// CarrierFile is one uploaded roster export awaiting analysis.
type CarrierFile struct {
	CarrierKey string `json:"carrier_key"`
	Name       string `json:"name"`
	Data       []byte `json:"-"`
}

// PersistencyResult is the per-carrier output of one analysis run.
// PersistencyRate is the All-window positive percentage.
type PersistencyResult struct {
	Carrier          string                         `json:"carrier"`
	TimeRanges       map[TimeWindow]WindowResult    `json:"time_ranges"`
	StatusBreakdowns map[TimeWindow]StatusBreakdown `json:"status_breakdowns"`
	TotalPolicies    int                            `json:"total_policies"`
	SkippedRows      int                            `json:"skipped_rows"`
	PersistencyRate  float64                        `json:"persistency_rate"`
}

// CarrierError reports one carrier whose file could not be analyzed. Other
// carriers in the same request are unaffected.
type CarrierError struct {
	Carrier string `json:"carrier"`
	File    string `json:"file"`
	Error   string `json:"error"`
}

// AnalysisResponse is the full output of one analysis request.
type AnalysisResponse struct {
	RunID         string              `json:"run_id"`
	Results       []PersistencyResult `json:"results"`
	LapsePolicies []LapseCandidate    `json:"lapse_policies"`
	Errors        []CarrierError      `json:"errors,omitempty"`
}
