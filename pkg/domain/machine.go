package domain

// Trigger is one named transition of a host state machine.
type Trigger struct {
	Name      string `json:"trigger" yaml:"trigger"`
	Source    string `json:"source" yaml:"source"`
	Dest      string `json:"dest" yaml:"dest"`
	Condition Side   `json:"condition" yaml:"condition"`
}

// Machine describes the state graph in the shape state-machine libraries expect:
// named states, an initial state and "<src>to<dst>" triggers.
type Machine struct {
	States   []string  `json:"states" yaml:"states"`
	Initial  string    `json:"initial" yaml:"initial"`
	Goal     string    `json:"goal" yaml:"goal"`
	Triggers []Trigger `json:"triggers" yaml:"triggers"`
}

// Machine returns the solution's state graph as a state-machine description.
func (s *Solution) Machine() Machine {
	m := Machine{
		States:   make([]string, len(s.States)),
		Triggers: make([]Trigger, len(s.Transitions)),
	}
	if s.Instance != nil {
		m.Initial = s.Instance.Initial.String()
		m.Goal = s.Instance.Goal.String()
	}
	for i, c := range s.States {
		m.States[i] = c.String()
	}
	for i, t := range s.Transitions {
		m.Triggers[i] = Trigger{
			Name:      t.Trigger(),
			Source:    t.From.String(),
			Dest:      t.To.String(),
			Condition: t.Condition,
		}
	}
	return m
}
