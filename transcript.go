package stagehand

// Transcript is the engine's message store. It keeps two parallel message
// sequences sharing a common prefix:
//
//   - The permanent record: the full conversation, ultimately handed to the
//     renderer or persister. Grown only by appends; never purged.
//   - The context view: what is actually sent to the model. It starts
//     identical to the permanent record but may be pruned per phase by the
//     purge directives.
//
// A Transcript is exclusively owned and mutated by the single [Runner]
// driving one agent run; it is never shared across concurrent runs and
// requires no locking.
type Transcript struct {
	permanent []Message
	context   []Message

	// phaseStart is the context-view index at which the current phase's
	// portion began. Purge directives scope to it.
	phaseStart int

	// permanentStart is the permanent-record index at which the current
	// phase's portion began, used to report a phase's appended messages.
	permanentStart int

	systemAdded bool
}

// NewTranscript creates an empty Transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message to both the permanent record and the context view.
func (t *Transcript) Append(msg Message) {
	t.permanent = append(t.permanent, msg)
	t.context = append(t.context, msg)
}

// AddSystem appends the system message exactly once for the whole run.
// Subsequent calls are no-ops. Returns true if the message was added.
func (t *Transcript) AddSystem(content string) bool {
	if t.systemAdded {
		return false
	}
	t.systemAdded = true
	t.Append(SystemMessage(content))
	return true
}

// BeginPhase marks the start of a new phase's portion in both sequences.
func (t *Transcript) BeginPhase() {
	t.phaseStart = len(t.context)
	t.permanentStart = len(t.permanent)
}

// PhaseMessages returns the permanent-record messages appended since the last
// BeginPhase call.
func (t *Transcript) PhaseMessages() []Message {
	return cloneMessages(t.permanent[t.permanentStart:])
}

// ContextView returns the message sequence to send to the model.
// The returned slice is a copy; mutating it does not affect the store.
func (t *Transcript) ContextView() []Message {
	return cloneMessages(t.context)
}

// Permanent returns the full permanent record.
// The returned slice is a copy; mutating it does not affect the store.
func (t *Transcript) Permanent() []Message {
	return cloneMessages(t.permanent)
}

// Len returns the permanent record length.
func (t *Transcript) Len() int {
	return len(t.permanent)
}

// ContextLen returns the context view length.
func (t *Transcript) ContextLen() int {
	return len(t.context)
}

// RewriteLastAssistantContent overwrites the content of the last assistant
// message in the permanent record. This is the single sanctioned in-place
// mutation, used by response-schema validation to store the canonical
// serialization. Returns false when no assistant message exists.
func (t *Transcript) RewriteLastAssistantContent(content string) bool {
	for i := len(t.permanent) - 1; i >= 0; i-- {
		if t.permanent[i].Role == RoleAssistant {
			t.permanent[i].Content = content
			return true
		}
	}
	return false
}

// Purge applies the phase's directives to the context view, in the fixed
// order tool-calls, all-tool-calls, previous-messages. Later directives
// operate on the already-purged view. The permanent record is untouched.
func (t *Transcript) Purge(directives []PurgeDirective) {
	has := func(want PurgeDirective) bool {
		for _, d := range directives {
			if d == want {
				return true
			}
		}
		return false
	}

	if has(PurgeToolCalls) {
		t.context = stripToolEvidence(t.context, t.phaseStart)
	}
	if has(PurgeAllToolCalls) {
		var removedBeforeStart int
		t.context, removedBeforeStart = stripToolEvidenceCounting(t.context, t.phaseStart)
		// Tool-result removals before the phase boundary shift it left.
		t.phaseStart -= removedBeforeStart
	}
	if has(PurgePreviousMessages) {
		start := min(t.phaseStart, len(t.context))
		t.context = cloneMessages(t.context[start:])
		t.phaseStart = 0
	}
}

// stripToolEvidence removes tool-result messages at or after index from, and
// strips ToolCalls from assistant messages in the same range while keeping
// their content. Messages before from are untouched.
func stripToolEvidence(msgs []Message, from int) []Message {
	if from < 0 {
		from = 0
	}
	boundary := min(from, len(msgs))
	out := make([]Message, 0, len(msgs))
	out = append(out, msgs[:boundary]...)
	for i := boundary; i < len(msgs); i++ {
		msg := msgs[i]
		if msg.Role == RoleTool {
			continue
		}
		if msg.Role == RoleAssistant && msg.HasToolCalls() {
			msg = msg.WithoutToolCalls()
		}
		out = append(out, msg)
	}
	return out
}

// stripToolEvidenceCounting strips tool evidence from the whole slice and
// reports how many messages were removed before the marker index, so callers
// can keep phase boundaries consistent.
func stripToolEvidenceCounting(msgs []Message, marker int) ([]Message, int) {
	out := make([]Message, 0, len(msgs))
	removedBeforeMarker := 0
	for i, msg := range msgs {
		if msg.Role == RoleTool {
			if i < marker {
				removedBeforeMarker++
			}
			continue
		}
		if msg.Role == RoleAssistant && msg.HasToolCalls() {
			msg = msg.WithoutToolCalls()
		}
		out = append(out, msg)
	}
	return out, removedBeforeMarker
}
