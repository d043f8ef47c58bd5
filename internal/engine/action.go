package engine

// Action is a discrete state transition request. The reducer applies it
// fully or, when preconditions fail, returns the state untouched.
type Action interface {
	isAction()
}

// CollectionChoice is one of the four ways to resolve a non-payer popup.
type CollectionChoice string

const (
	LetSlide CollectionChoice = "let_slide"
	Pressure CollectionChoice = "pressure"
	Enforce  CollectionChoice = "enforce"
	CutOff   CollectionChoice = "cut_off"
)

// NewGame starts a fresh session, discarding the current state.
type NewGame struct{}

// LoadGame replaces the state wholesale with an external snapshot.
type LoadGame struct {
	State *GameState
}

// SetLine moves the player's line on a game; snapped to the half-point
// grid, ignored once the game is complete.
type SetLine struct {
	GameID string
	Line   float64
}

// DoMission executes one of the day's mission offers.
type DoMission struct {
	MissionID string
}

// Rest trades the action for a flat energy refill.
type Rest struct{}

// EndDay advances the clock one day, or rolls the week over after game
// day.
type EndDay struct{}

// SimulateGames plays out the week's remaining games. Game day only.
type SimulateGames struct{}

// CollectDebt knocks on a debtor's door.
type CollectDebt struct {
	CustomerID string
}

// HandleNonPayer resolves the pending non-payer popup.
type HandleNonPayer struct {
	CustomerID string
	Choice     CollectionChoice
}

// DismissPopup clears the pending popup with no other effect.
type DismissPopup struct{}

// AddLog appends incidental narration to the game log.
type AddLog struct {
	Message string
	Level   LogLevel
}

func (NewGame) isAction()        {}
func (LoadGame) isAction()       {}
func (SetLine) isAction()        {}
func (DoMission) isAction()      {}
func (Rest) isAction()           {}
func (EndDay) isAction()         {}
func (SimulateGames) isAction()  {}
func (CollectDebt) isAction()    {}
func (HandleNonPayer) isAction() {}
func (DismissPopup) isAction()   {}
func (AddLog) isAction()         {}
