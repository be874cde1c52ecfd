package solver

// Cost computes the soft fairness cost of assigning the person another slot;
// lower is better. The cost is a pure function of the history snapshot:
//
//	cost = WeightTotalLoad * normalizedTotalLoad - WeightRecency * daysSinceLast
//
// so lightly-loaded people and people with long gaps since last serving sort
// first. Ties are broken by person id in the candidate ordering, never here.
func Cost(personID string, history History, cfg Config) float64 {
	return cfg.WeightTotalLoad*history.NormalizedLoad(personID) -
		cfg.WeightRecency*history.DaysSinceLast(personID)
}
