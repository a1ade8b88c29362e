package command

// ID identifies a system command. The set is closed: every ID the intent
// classifier can produce has exactly one Spec in the registry.
type ID string

const (
	GoogleSearch             ID = "GoogleSearch"
	Youtube                  ID = "Youtube"
	Screenshot               ID = "Screenshot"
	StartWordProject         ID = "StartWordProject"
	LowerBrightness          ID = "LowerBrightness"
	RaiseBrightness          ID = "RaiseBrightness"
	SetBrightness            ID = "SetBrightness"
	LowerVolume              ID = "LowerVolume"
	RaiseVolume              ID = "RaiseVolume"
	MuteVolume               ID = "MuteVolume"
	UnmuteVolume             ID = "UnmuteVolume"
	SetVolume                ID = "SetVolume"
	DownloadMusicPlaceholder ID = "DownloadMusicPlaceholder"
)

// Category names the backend capability a command targets.
type Category string

const (
	CategoryNone    Category = ""
	CategoryWeb     Category = "web"
	CategoryCapture Category = "capture"
	CategoryProcess Category = "process"
	CategoryDisplay Category = "display"
	CategoryAudio   Category = "audio"
)

// ParamKind describes what a command extracts from the utterance before dispatch.
type ParamKind int

const (
	ParamNone ParamKind = iota
	// ParamPercent requires an integer in [Min, Max] following Anchor.
	ParamPercent
	// ParamQuery requires a non-empty free-text query left after removing Noise.
	ParamQuery
)

func (k ParamKind) String() string {
	switch k {
	case ParamPercent:
		return "percent"
	case ParamQuery:
		return "query"
	default:
		return "none"
	}
}

// Default relative step sizes.
const (
	BrightnessStep = 10
	VolumeStep     = 5
)

// Spec is the static dispatch contract for one command.
type Spec struct {
	ID       ID
	Category Category
	Param    ParamKind

	// Domain names the controlled quantity in user-facing messages ("brightness").
	Domain string
	// Anchor is the trigger phrase a percentage is read after.
	Anchor   string
	Min, Max int
	// Step is the fixed delta for relative commands; zero otherwise.
	Step int

	// Noise lists words and phrases stripped from the utterance to form a query.
	Noise []string
	// EmptyQuery is reported when nothing is left after stripping Noise.
	EmptyQuery string

	// Static, when set, is returned as an Ok outcome without calling any backend.
	Static string
}

// ids is the registry order; it matches the classifier rule order.
var ids = []ID{
	GoogleSearch,
	Youtube,
	Screenshot,
	StartWordProject,
	SetBrightness,
	LowerBrightness,
	RaiseBrightness,
	SetVolume,
	LowerVolume,
	RaiseVolume,
	MuteVolume,
	UnmuteVolume,
	DownloadMusicPlaceholder,
}

var registry = map[ID]Spec{
	GoogleSearch: {
		ID: GoogleSearch, Category: CategoryWeb, Param: ParamQuery,
		Noise:      []string{"search", "google", "for"},
		EmptyQuery: "No query provided for Google search.",
	},
	Youtube: {
		ID: Youtube, Category: CategoryWeb, Param: ParamQuery,
		Noise:      []string{"play", "on youtube", "youtube", "search"},
		EmptyQuery: "Please provide something to search on YouTube.",
	},
	Screenshot:       {ID: Screenshot, Category: CategoryCapture},
	StartWordProject: {ID: StartWordProject, Category: CategoryProcess},
	SetBrightness: {
		ID: SetBrightness, Category: CategoryDisplay, Param: ParamPercent,
		Domain: "brightness", Anchor: "set brightness to", Min: 0, Max: 100,
	},
	LowerBrightness: {ID: LowerBrightness, Category: CategoryDisplay, Domain: "brightness", Step: BrightnessStep},
	RaiseBrightness: {ID: RaiseBrightness, Category: CategoryDisplay, Domain: "brightness", Step: BrightnessStep},
	SetVolume: {
		ID: SetVolume, Category: CategoryAudio, Param: ParamPercent,
		Domain: "volume", Anchor: "set volume to", Min: 0, Max: 100,
	},
	LowerVolume:  {ID: LowerVolume, Category: CategoryAudio, Domain: "volume", Step: VolumeStep},
	RaiseVolume:  {ID: RaiseVolume, Category: CategoryAudio, Domain: "volume", Step: VolumeStep},
	MuteVolume:   {ID: MuteVolume, Category: CategoryAudio, Domain: "volume"},
	UnmuteVolume: {ID: UnmuteVolume, Category: CategoryAudio, Domain: "volume"},
	DownloadMusicPlaceholder: {
		ID:     DownloadMusicPlaceholder,
		Static: "Download music feature is a placeholder.",
	},
}

// Lookup returns the Spec registered for id.
func Lookup(id ID) (Spec, bool) {
	s, ok := registry[id]
	return s, ok
}

// All returns every registered Spec in registry order.
func All() []Spec {
	specs := make([]Spec, 0, len(ids))
	for _, id := range ids {
		specs = append(specs, registry[id])
	}
	return specs
}

// IDs returns every registered command ID in registry order.
func IDs() []ID {
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}

// ClampPercent bounds v to [0, 100].
func ClampPercent(v int) int {
	return max(0, min(100, v))
}
