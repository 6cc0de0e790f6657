package graph

// NodeType enumerates the recognized node types. Node.Type is a free-form
// string; only recognized types participate in typed edges.
type NodeType uint8

const (
	Thread NodeType = iota
	Turn
	Message
	Actor
	Concept
	Decision
	Task
)

// NodeTypeFromString resolves a node type name to its recognized type.
func NodeTypeFromString(s string) (NodeType, bool) {
	switch s {
	case "Thread":
		return Thread, true
	case "Turn":
		return Turn, true
	case "Message":
		return Message, true
	case "Actor":
		return Actor, true
	case "Concept":
		return Concept, true
	case "Decision":
		return Decision, true
	case "Task":
		return Task, true
	default:
		return 0, false
	}
}

// String returns the node type name as it appears in Node.Type.
func (t NodeType) String() string {
	switch t {
	case Thread:
		return "Thread"
	case Turn:
		return "Turn"
	case Message:
		return "Message"
	case Actor:
		return "Actor"
	case Concept:
		return "Concept"
	case Decision:
		return "Decision"
	case Task:
		return "Task"
	default:
		return "unknown"
	}
}

// EdgeType enumerates the recognized edge types.
type EdgeType uint8

const (
	HasTurn EdgeType = iota
	HasMessage
	AuthoredBy
	RespondsTo
	Mentions
	RelatesTo
	Decides
	BlockedBy
	AppliesTo
	CreatesTask
)

// EdgeTypeFromString resolves an edge type name to its recognized type.
func EdgeTypeFromString(s string) (EdgeType, bool) {
	switch s {
	case "HAS_TURN":
		return HasTurn, true
	case "HAS_MESSAGE":
		return HasMessage, true
	case "AUTHORED_BY":
		return AuthoredBy, true
	case "RESPONDS_TO":
		return RespondsTo, true
	case "MENTIONS":
		return Mentions, true
	case "RELATES_TO":
		return RelatesTo, true
	case "DECIDES":
		return Decides, true
	case "BLOCKED_BY":
		return BlockedBy, true
	case "APPLIES_TO":
		return AppliesTo, true
	case "CREATES_TASK":
		return CreatesTask, true
	default:
		return 0, false
	}
}

// String returns the edge type name as it appears in Edge.Type.
func (t EdgeType) String() string {
	switch t {
	case HasTurn:
		return "HAS_TURN"
	case HasMessage:
		return "HAS_MESSAGE"
	case AuthoredBy:
		return "AUTHORED_BY"
	case RespondsTo:
		return "RESPONDS_TO"
	case Mentions:
		return "MENTIONS"
	case RelatesTo:
		return "RELATES_TO"
	case Decides:
		return "DECIDES"
	case BlockedBy:
		return "BLOCKED_BY"
	case AppliesTo:
		return "APPLIES_TO"
	case CreatesTask:
		return "CREATES_TASK"
	default:
		return "unknown"
	}
}

// WellTyped reports whether the typed-edge table permits an edge of the
// given type between the given endpoint types.
func WellTyped(edge EdgeType, src, dst NodeType) bool {
	switch {
	case edge == HasTurn && src == Thread && dst == Turn:
		return true
	case edge == HasMessage && src == Turn && dst == Message:
		return true
	case edge == AuthoredBy && src == Message && dst == Actor:
		return true
	case edge == RespondsTo && src == Message && dst == Message:
		return true
	case edge == Mentions && src == Message && dst == Concept:
		return true
	case edge == RelatesTo && src == Concept && dst == Concept:
		return true
	case edge == Decides && src == Decision && (dst == Concept || dst == Task):
		return true
	case edge == BlockedBy && src == Task && (dst == Task || dst == Concept):
		return true
	case edge == AppliesTo && src == Decision && dst == Thread:
		return true
	case edge == CreatesTask && src == Message && dst == Task:
		return true
	default:
		return false
	}
}
