package dtos

// WheelEntry is one slice of the wheel. Enabled and Weight pass caller values through untouched.
type WheelEntry struct {
	Text    string `json:"text"`
	Enabled any    `json:"enabled"`
	Weight  any    `json:"weight"`
}

type WheelConfig struct {
	DisplayWinnerDialog   any          `json:"displayWinnerDialog"`
	SlowSpin              any          `json:"slowSpin"`
	PageBackgroundColor   any          `json:"pageBackgroundColor"`
	Description           string       `json:"description"`
	AnimateWinner         bool         `json:"animateWinner"`
	Title                 string       `json:"title"`
	Type                  string       `json:"type"`
	AutoRemoveWinner      bool         `json:"autoRemoveWinner"`
	DuringSpinSound       string       `json:"duringSpinSound"`
	MaxNames              int          `json:"maxNames"`
	AfterSpinSoundVolume  int          `json:"afterSpinSoundVolume"`
	SpinTime              int          `json:"spinTime"`
	HubSize               string       `json:"hubSize"`
	Entries               []WheelEntry `json:"entries"`
	IsAdvanced            bool         `json:"isAdvanced"`
	ShowTitle             bool         `json:"showTitle"`
	DuringSpinSoundVolume int          `json:"duringSpinSoundVolume"`
	DisplayRemoveButton   bool         `json:"displayRemoveButton"`
	PictureType           string       `json:"pictureType"`
	AllowDuplicates       bool         `json:"allowDuplicates"`
	DrawOutlines          bool         `json:"drawOutlines"`
	LaunchConfetti        bool         `json:"launchConfetti"`
	DrawShadow            bool         `json:"drawShadow"`
	PointerChangesColor   bool         `json:"pointerChangesColor"`
}

// WheelPayload is the body sent to the wheel provider
type WheelPayload struct {
	ShareMode   any         `json:"shareMode"`
	WheelConfig WheelConfig `json:"wheelConfig"`
}

type WheelResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type WheelErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"status,omitempty"`
}
