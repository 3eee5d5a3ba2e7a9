package model

// CapabilityProfile describes what a role may do in a conversation: the
// functions it can invoke and the contextual knowledge the response
// generator draws on. One profile exists per role, created at process
// start and never mutated.
type CapabilityProfile struct {
	Role               Role
	Functions          []FunctionName
	ContextDescription string
	KnowledgeSnippets  []string
}

// Allows reports whether the profile permits invoking the named function
func (p *CapabilityProfile) Allows(fn FunctionName) bool {
	for _, f := range p.Functions {
		if f == fn {
			return true
		}
	}
	return false
}
