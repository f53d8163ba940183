package messages

// PaneType identifies the focused pane
type PaneType int

const (
	PaneHistory PaneType = iota
	PaneCommit
)

func (p PaneType) String() string {
	switch p {
	case PaneHistory:
		return "history"
	case PaneCommit:
		return "commit"
	}
	return "unknown"
}

// HistoryLoaded delivers `git log` output. Seq identifies the request;
// stale results are dropped.
type HistoryLoaded struct {
	Seq  int
	Text string
	Err  error
}

// CommitKey identifies one commit view: a hash shown with an optional
// --relative scope.
type CommitKey struct {
	Hash  string
	Scope string
}

// CommitSelected is sent when the history cursor lands on a commit line.
type CommitSelected struct {
	Hash string
}

// CommitLoaded delivers `git show` output for Key.
type CommitLoaded struct {
	Key  CommitKey
	Text string
	Err  error
}

// RepoChanged is sent when refs change on disk.
type RepoChanged struct{}

// HighlightRetry asks a pane to annotate its visible range again after the
// viewport reported a layout that was not ready.
type HighlightRetry struct {
	Pane    PaneType
	Version int
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ToggleHelp requests toggling the help overlay
type ToggleHelp struct{}
