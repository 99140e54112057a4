package model

// Provider supplies the read-only portfolio drawn on the curve.
type Provider interface {
	Projects() []Project
}

// Portfolio is an in-memory Provider. The slice is copied on the way in and
// on the way out so callers can never mutate the loaded data.
type Portfolio struct {
	projects []Project
}

// NewPortfolio wraps projects in a Provider.
func NewPortfolio(projects []Project) *Portfolio {
	cp := make([]Project, len(projects))
	copy(cp, projects)
	return &Portfolio{projects: cp}
}

// Projects returns a copy of the portfolio in load order.
func (p *Portfolio) Projects() []Project {
	if p == nil {
		return nil
	}
	cp := make([]Project, len(p.projects))
	copy(cp, p.projects)
	return cp
}

// Len returns the number of projects.
func (p *Portfolio) Len() int {
	if p == nil {
		return 0
	}
	return len(p.projects)
}

// Find returns the project with the given name.
func (p *Portfolio) Find(name string) (Project, bool) {
	if p == nil {
		return Project{}, false
	}
	for _, proj := range p.projects {
		if proj.Name == name {
			return proj, true
		}
	}
	return Project{}, false
}

// DefaultProjects is the portfolio shown when no dataset is configured.
func DefaultProjects() []Project {
	return []Project{
		{Name: "Leadership", Position: 0.15, Category: CategoryUnplanned, Risk: LevelHigh, Complexity: LevelLow, Timeline: TimelineNextMonth},
		{Name: "Cyber Transformation", Position: 0.25, Category: CategoryIS, Risk: LevelHigh, Complexity: LevelHigh, Timeline: TimelineOnHold},
		{Name: "LOB Support Model", Position: 0.32, Category: CategoryIS, Risk: LevelLow, Complexity: LevelLow, Timeline: TimelineNextHalf},
		{Name: "Microsoft 365", Position: 0.4, Category: CategoryITBusiness, Risk: LevelHigh, Complexity: LevelHigh, Timeline: TimelineNextYear},
		{Name: "Cloud Operating Model", Position: 0.55, Category: CategoryUnplanned, Risk: LevelHigh, Complexity: LevelHigh, Timeline: TimelineNextQuarter},
		{Name: "New Data Center", Position: 0.75, Category: CategoryITBusiness, Risk: LevelHigh, Complexity: LevelHigh, Timeline: TimelineNextYear},
		{Name: "Issue Management Program", Position: 0.85, Category: CategoryITBusiness, Risk: LevelHigh, Complexity: LevelHigh, Timeline: TimelineNextYear},
		{Name: "Sector / Government Engagements", Position: 0.45, Category: CategoryBAU, Risk: LevelMedium, Complexity: LevelMedium, Timeline: TimelineNextQuarter},
		{Name: "Regulatory Engagement / Assessment", Position: 0.35, Category: CategoryBAU, Risk: LevelMedium, Complexity: LevelHigh, Timeline: TimelineNextHalf},
		{Name: "Vulnerability Management", Position: 0.65, Category: CategoryBAU, Risk: LevelMedium, Complexity: LevelMedium, Timeline: TimelineNextQuarter},
	}
}
