package scpi

import "strings"

// CommandType hints at which forms a Command allows. Not enforced by the
// dispatcher; useful for introspection/help tooling (spec.md §9).
type CommandType int

const (
	Unknown CommandType = iota
	NoQuery
	QueryOnly
	Both
)

// Command is implemented by every leaf handler (spec.md §9 "Open-ended
// polymorphism without inheritance"). The default Event/Query stubs both
// return UndefinedHeader, matching the original's defaults.
type Command interface {
	Meta() CommandType
	Event(dev Device, ctx *Context, params Parameters) error
	Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error
}

// BaseCommand supplies the UndefinedHeader-returning default Event/Query so
// concrete commands only implement the form(s) they support, mirroring the
// trait default methods of the original.
type BaseCommand struct{}

func (BaseCommand) Meta() CommandType { return Unknown }

func (BaseCommand) Event(Device, *Context, Parameters) error {
	return NewError(UndefinedHeader)
}

func (BaseCommand) Query(Device, *Context, Parameters, *ResponseUnit) error {
	return NewError(UndefinedHeader)
}

// Node is one element of the static command tree (spec.md §3 "Command
// node"). Exactly one of Handler (Leaf) or Children (Branch) is set.
type Node struct {
	Mnemonic  string
	IsDefault bool
	Common    bool    // true for a "*XYZ" common-command node
	Handler   Command // non-nil for a leaf
	Children  []*Node // non-empty for a branch
}

// Leaf constructs a leaf node.
func Leaf(mnemonic string, handler Command) *Node {
	return &Node{Mnemonic: mnemonic, Handler: handler}
}

// CommonLeaf constructs a "*XYZ" common-command leaf, declared with its
// bare mnemonic (no leading '*'); it is only reachable via the '*' prefix,
// never via relative/absolute mnemonic resolution (spec.md §3).
func CommonLeaf(mnemonic string, handler Command) *Node {
	return &Node{Mnemonic: mnemonic, Handler: handler, Common: true}
}

// DefaultLeaf constructs a leaf node marked as its parent's default child.
func DefaultLeaf(mnemonic string, handler Command) *Node {
	return &Node{Mnemonic: mnemonic, Handler: handler, IsDefault: true}
}

// Branch constructs a branch node.
func Branch(mnemonic string, children ...*Node) *Node {
	return &Node{Mnemonic: mnemonic, Children: children}
}

// DefaultBranch constructs a branch node marked as its parent's default
// child.
func DefaultBranch(mnemonic string, children ...*Node) *Node {
	return &Node{Mnemonic: mnemonic, Children: children, IsDefault: true}
}

func (n *Node) isLeaf() bool { return n.Handler != nil }

func (n *Node) defaultLeaf() *Node {
	for _, c := range n.Children {
		if c.IsDefault && c.isLeaf() {
			return c
		}
	}
	return nil
}

func (n *Node) defaultBranch() *Node {
	for _, c := range n.Children {
		if c.IsDefault && !c.isLeaf() {
			return c
		}
	}
	return nil
}

// matchMnemonic implements spec.md §3's "Header" matching rule: a
// mnemonic's long form has an implicit short form (the uppercase prefix
// plus any embedded digits); a numeric suffix on the input is equivalent to
// appending it to the short form, and the bare form and "1" are
// interchangeable. Comparison is ASCII case-insensitive throughout.
func matchMnemonic(declared string, input []byte) bool {
	shortLen := 0
	for shortLen < len(declared) && isUpperOrDigit(declared[shortLen]) {
		shortLen++
	}
	short := declared[:shortLen]

	// Split the input into its alphabetic core and a trailing numeric
	// suffix; an absent suffix is equivalent to "1".
	numStart := len(input)
	for numStart > 0 && isDigit(input[numStart-1]) {
		numStart--
	}
	core := string(input[:numStart])
	suffix := string(input[numStart:])
	if suffix == "" {
		suffix = "1"
	}

	// The declared mnemonic's own trailing digits (if any) are its bound
	// suffix; default is "1" when absent. The short form's trailing digits
	// (part of the uppercase prefix) are a separate, always-matchable core.
	declaredCore, declaredSuffix := splitTrailingDigits(declared)
	shortCore, _ := splitTrailingDigits(short)
	if declaredSuffix == "" {
		declaredSuffix = "1"
	}

	coreMatches := asciiEqualCI(core, declaredCore) || asciiEqualCI(core, shortCore)
	return coreMatches && suffix == declaredSuffix
}

func isUpperOrDigit(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func splitTrailingDigits(s string) (core string, digits string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i], s[i:]
}

func asciiEqualCI(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Device is the capability interface the dispatcher requires of the
// embedding program (spec.md §6).
type Device interface {
	HandleError(err *Error)
}

// Context carries dispatcher state across the units of a single message:
// the current branch (reset to root at the start of each message, and on
// any absolute header) (spec.md §4.4).
type Context struct {
	Root    *Node
	current *Node
}

// NewContext returns a dispatch context rooted at root, current branch
// initialized to root per spec.md §4.4.
func NewContext(root *Node) *Context {
	return &Context{Root: root, current: root}
}

// Dispatch runs one complete program message against dev, returning the
// accumulated response bytes (nil when no unit produced response data).
// The returned slice aliases fmtr's buffer, which is cleared at the start
// of the next Dispatch with the same formatter.
func Dispatch(root *Node, dev Device, msg []byte, fmtr Formatter) []byte {
	ctx := NewContext(root)
	tok := NewPeekTokenizer(NewTokenizer(msg))
	fmtr.Clear()
	opened := false

	for {
		t, ok, err := tok.Peek()
		if err != nil {
			tok.Next()
			dev.HandleError(AsError(err))
			skipToUnitSeparator(tok)
			continue
		}
		if !ok {
			break
		}
		if t.Kind == TokUnitSeparator || t.Kind == TokHeaderSeparator {
			tok.Next()
			continue
		}

		node, isCommon, herr := resolveHeader(ctx, tok)
		if herr != nil {
			dev.HandleError(AsError(herr))
			skipToUnitSeparator(tok)
			continue
		}
		if !isCommon {
			ctx.current = parentBranchOf(ctx.Root, node)
		}
		_lg.Tracef("scpi: dispatching %q (common=%v)", node.Mnemonic, isCommon)

		unit := fmtr.ResponseUnit()
		if err := invoke(dev, ctx, node, tok, unit); err != nil {
			dev.HandleError(AsError(err))
		} else if ferr := unit.Finish(); ferr != nil {
			dev.HandleError(AsError(ferr))
		} else if unit.hasData || unit.hasHdr {
			opened = true
		}

		if err := afterUnit(tok); err != nil {
			dev.HandleError(AsError(err))
			skipToUnitSeparator(tok)
		}
	}

	if !opened {
		return nil
	}
	fmtr.MessageEnd()
	return fmtr.Bytes()
}

func skipToUnitSeparator(tok *PeekTokenizer) {
	for {
		t, ok, err := tok.Peek()
		if err != nil || !ok {
			tok.Next()
			return
		}
		if t.Kind == TokUnitSeparator {
			return
		}
		tok.Next()
	}
}

// afterUnit enforces spec.md §4.4 step 4: after a handler returns, expect a
// unit separator, end of message, or trailing whitespace then the same.
func afterUnit(tok *PeekTokenizer) error {
	for {
		t, ok, err := tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch t.Kind {
		case TokUnitSeparator:
			return nil
		case TokHeaderSeparator:
			tok.Next()
			continue
		default:
			if t.IsData() {
				return NewError(ParameterNotAllowed)
			}
			return NewError(SyntaxError)
		}
	}
}

// resolveHeader implements spec.md §4.4 step 1: peel mnemonics off the
// header, following absolute/relative/common resolution, landing on a
// single node ready for the terminal step.
func resolveHeader(ctx *Context, tok *PeekTokenizer) (node *Node, isCommon bool, err error) {
	t, ok, err := tok.Peek()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, NewError(SyntaxError)
	}

	branch := ctx.current
	switch t.Kind {
	case TokMnemonicSeparator:
		tok.Next()
		branch = ctx.Root
		t, ok, err = tok.Peek()
		if err != nil {
			return nil, false, err
		}
		if ok && t.Kind == TokCommonPrefix {
			// A leading ':' ahead of a common command ("*OPER") is a
			// redundant absolute reset; common commands are always
			// root-anchored, so fall through to common resolution.
			return resolveCommon(ctx, tok)
		}
		if !ok || t.Kind != TokProgramMnemonic {
			return nil, false, NewError(CommandError)
		}
	case TokCommonPrefix:
		return resolveCommon(ctx, tok)
	case TokProgramMnemonic:
		// relative, continue below
	default:
		return nil, false, NewError(SyntaxError)
	}

	for {
		t, ok, err = tok.Peek()
		if err != nil {
			return nil, false, err
		}
		if !ok || t.Kind != TokProgramMnemonic {
			return nil, false, NewError(SyntaxError)
		}
		child := matchChild(branch, t.Bytes, false)
		if child == nil {
			if db := branch.defaultBranch(); db != nil {
				branch = db
				continue
			}
			return nil, false, NewError(UndefinedHeader)
		}
		tok.Next()
		nt, ok, err := tok.Peek()
		if err != nil {
			return nil, false, err
		}
		if ok && nt.Kind == TokMnemonicSeparator {
			if child.isLeaf() {
				return nil, false, NewError(UndefinedHeader)
			}
			tok.Next()
			branch = child
			continue
		}
		return terminalStep(child, tok)
	}
}

// resolveCommon matches a "*XYZ" common-command mnemonic against the root's
// common children only, never touching the current branch (spec.md §3/§4.4).
// tok is positioned at the TokCommonPrefix token.
func resolveCommon(ctx *Context, tok *PeekTokenizer) (*Node, bool, error) {
	tok.Next()
	t, ok, err := tok.Peek()
	if err != nil {
		return nil, false, err
	}
	if !ok || t.Kind != TokProgramMnemonic {
		return nil, false, NewError(CommandError)
	}
	child := matchChild(ctx.Root, t.Bytes, true)
	if child == nil {
		return nil, false, NewError(UndefinedHeader)
	}
	tok.Next()
	n, _, err := terminalStep(child, tok)
	return n, true, err
}

// terminalStep implements spec.md §4.4 step 2: the landing node is either a
// leaf (dispatch directly) or a branch (fall through its default leaf, then
// its default branch).
func terminalStep(n *Node, tok *PeekTokenizer) (*Node, bool, error) {
	for !n.isLeaf() {
		if dl := n.defaultLeaf(); dl != nil {
			n = dl
			break
		}
		if db := n.defaultBranch(); db != nil {
			n = db
			continue
		}
		return nil, false, NewError(UndefinedHeader)
	}
	return n, false, nil
}

// Validate walks the tree rooted at n and checks the structural invariants
// of spec.md §3 "Invariants of the tree" / §9 "the test suite includes a
// structural validator": at most one default leaf and one default branch per
// branch, the default child (if any) ordered first among its siblings,
// mnemonics unique under short-form comparison within a branch, and
// common-command nodes confined to the root's direct children.
func (n *Node) Validate() error {
	return validateNode(n, true)
}

func validateNode(n *Node, isRoot bool) error {
	if n.isLeaf() {
		return nil
	}
	var defaultLeaves, defaultBranches int
	sawNonDefault := false
	for i, c := range n.Children {
		if c.Common && !isRoot {
			return errTreeInvariant{msg: "common-command node " + c.Mnemonic + " is not a child of root"}
		}
		if c.IsDefault {
			if sawNonDefault {
				return errTreeInvariant{msg: "default child " + c.Mnemonic + " is not first among siblings"}
			}
			if c.isLeaf() {
				defaultLeaves++
			} else {
				defaultBranches++
			}
		} else {
			sawNonDefault = true
		}
		for j := 0; j < i; j++ {
			other := n.Children[j]
			if other.Common != c.Common {
				continue
			}
			if mnemonicsCollide(other.Mnemonic, c.Mnemonic) {
				return errTreeInvariant{msg: "duplicate mnemonic " + c.Mnemonic + " under short-form comparison"}
			}
		}
		if err := validateNode(c, false); err != nil {
			return err
		}
	}
	if defaultLeaves > 1 {
		return errTreeInvariant{msg: "branch " + n.Mnemonic + " has more than one default leaf"}
	}
	if defaultBranches > 1 {
		return errTreeInvariant{msg: "branch " + n.Mnemonic + " has more than one default branch"}
	}
	return nil
}

// mnemonicsCollide reports whether two declared mnemonics would match the
// same input under matchMnemonic's short-form rule (spec.md §3 "Mnemonics
// within a single branch's children are unique under the short-form
// comparison").
func mnemonicsCollide(a, b string) bool {
	aCore, aSuf := splitTrailingDigits(a)
	bCore, bSuf := splitTrailingDigits(b)
	if aSuf == "" {
		aSuf = "1"
	}
	if bSuf == "" {
		bSuf = "1"
	}
	aShort, _ := splitTrailingDigits(shortForm(a))
	bShort, _ := splitTrailingDigits(shortForm(b))
	return aSuf == bSuf && (asciiEqualCI(aCore, bCore) || asciiEqualCI(aCore, bShort) ||
		asciiEqualCI(aShort, bCore) || asciiEqualCI(aShort, bShort))
}

func shortForm(declared string) string {
	shortLen := 0
	for shortLen < len(declared) && isUpperOrDigit(declared[shortLen]) {
		shortLen++
	}
	return declared[:shortLen]
}

func matchChild(branch *Node, mnemonic []byte, common bool) *Node {
	for _, c := range branch.Children {
		if c.Common != common {
			continue
		}
		if matchMnemonic(c.Mnemonic, mnemonic) {
			return c
		}
	}
	return nil
}

// parentBranchOf finds the parent branch of target within root, used to
// update the dispatcher's "current branch" state after a relative unit
// (spec.md §4.4 step 3).
func parentBranchOf(root, target *Node) *Node {
	if root == target {
		return root
	}
	for _, c := range root.Children {
		if c == target {
			return root
		}
		if p := parentBranchOf(c, target); p != nil {
			return p
		}
	}
	return nil
}

// invoke performs spec.md §4.4 step 2's query-vs-event choice and calls the
// handler.
func invoke(dev Device, ctx *Context, n *Node, tok *PeekTokenizer, resp *ResponseUnit) error {
	t, ok, err := tok.Peek()
	if err != nil {
		return err
	}
	params := NewParameters(tok)
	if ok && t.Kind == TokQuerySuffix {
		tok.Next()
		return n.Handler.Query(dev, ctx, params, resp)
	}
	return n.Handler.Event(dev, ctx, params)
}
