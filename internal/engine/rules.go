package engine

// Rules holds the tuning constants for a session. Defaults match the
// classic balance; a rules file may override them.
type Rules struct {
	StartingBankroll int     `json:"startingBankroll"`
	StartingEnergy   int     `json:"startingEnergy"`
	MaxEnergy        int     `json:"maxEnergy"`
	Juice            float64 `json:"juice"`

	BustThreshold int `json:"bustThreshold"`
	WinThreshold  int `json:"winThreshold"`
	HeatLimit     int `json:"heatLimit"`

	GameDay         int `json:"gameDay"`
	DayEnergyGain   int `json:"dayEnergyGain"`   // granted on END_DAY
	NightHeatDecay  int `json:"nightHeatDecay"`  // heat shed overnight
	RestEnergyGain  int `json:"restEnergyGain"`  // flat REST action
	CollectEnergy   int `json:"collectEnergy"`   // COLLECT_DEBT cost
	CollectHeatBump int `json:"collectHeatBump"` // heat for knocking on doors
}

// DefaultRules returns the standard game balance.
func DefaultRules() Rules {
	return Rules{
		StartingBankroll: 10_000,
		StartingEnergy:   3,
		MaxEnergy:        10,
		Juice:            0.1,
		BustThreshold:    500,
		WinThreshold:     100_000,
		HeatLimit:        100,
		GameDay:          7,
		DayEnergyGain:    4,
		NightHeatDecay:   10,
		RestEnergyGain:   3,
		CollectEnergy:    1,
		CollectHeatBump:  2,
	}
}
