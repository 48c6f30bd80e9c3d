package goACL

type Report struct {
	Name         string
	Attached     bool
	FallbackRole string
	FallbackLive bool
	RoleCount    int
	ActionCount  int
	AllowCount   int
	DenyCount    int
	MetricsOn    bool
}

func (e *Engine) Report() Report {
	if e == nil {
		return Report{}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	allow, deny := 0, 0
	for _, allowed := range e.grants {
		if allowed {
			allow++
		} else {
			deny++
		}
	}

	fallback := e.config.Resolution.FallbackRole

	return Report{
		Name:         e.name,
		Attached:     e.store != nil,
		FallbackRole: fallback,
		FallbackLive: fallback != "" && e.roles.Has(fallback),
		RoleCount:    e.roles.Len(),
		ActionCount:  e.actions.Len(),
		AllowCount:   allow,
		DenyCount:    deny,
		MetricsOn:    e.metrics.Enabled(),
	}
}
