package poolfile

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/internal/expr"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/tree"
)

// Mode selects what reading a pool file does to the pool.
type Mode int

const (
	// ModeCreate declares the groups and items of the file in the pool.
	ModeCreate Mode = iota
	// ModeSetDefaults replaces the defaults of items the pool already declares.
	ModeSetDefaults
)

func (mode Mode) String() string {
	if mode == ModeSetDefaults {
		return "set defaults"
	}

	return "create"
}

const stdinName = "<input>"

// Load returns a new pool declared by filename.
func Load(filename string, opts ...pool.Option) (*pool.Pool, error) {
	p, err := pool.New(opts...)
	if err != nil {
		return nil, err
	}

	if err := ReadFile(filename, p, ModeCreate); err != nil {
		return nil, err
	}

	return p, nil
}

// ReadFile reads filename into the pool.
func ReadFile(filename string, p *pool.Pool, mode Mode) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	defer file.Close()

	return read(file, filename, p, mode)
}

// Read reads a pool file from r into the pool, starting at the current group. The pool
// is updated afterwards.
func Read(r io.Reader, p *pool.Pool, mode Mode) error {
	return read(r, stdinName, p, mode)
}

type reader struct {
	pool     *pool.Pool
	filename string
	groups   []string
	mode     Mode
	items    int
}

func read(r io.Reader, filename string, p *pool.Pool, mode Mode) error {
	rd := &reader{pool: p, filename: filename, mode: mode}

	if mode == ModeSetDefaults {
		p.Update()

		rd.groups = locatorPath(p.Locator())
	}

	depth := 0
	scanner := bufio.NewScanner(r)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error

		switch {
		case len(fields) > 1 && isGroupKeyword(fields[0]) && !strings.ContainsAny(line, DelimValue+DelimUnit+DelimHelp):
			err = rd.enter(strings.Join(fields[1:], " "))
			depth++
		case len(fields) == 1 && fields[0] == KeywordEnd:
			if depth == 0 {
				return errors.New(rd.grammarError(lineNo, line, `"end" without group`))
			}

			err = rd.exit()
			depth--
		default:
			err = rd.leaf(lineNo, line)
		}

		if err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.WithStackTrace(err)
	}

	if depth != 0 {
		return errors.New(GrammarError{File: filename, Reason: strconv.Itoa(depth) + " groups without end"})
	}

	p.Update()
	p.Logger().Debugf("Read %d items from %s (%s)", rd.items, filename, mode)

	return nil
}

func (rd *reader) grammarError(lineNo int, line, reason string) GrammarError {
	return GrammarError{File: rd.filename, Line: lineNo, Text: line, Reason: reason}
}

func (rd *reader) enter(name string) error {
	rd.groups = append(rd.groups, name)

	if rd.mode == ModeSetDefaults {
		return rd.pool.ChangeSubpool(name)
	}

	return rd.pool.Subpool(name)
}

func (rd *reader) exit() error {
	rd.groups = rd.groups[:len(rd.groups)-1]

	return rd.pool.ChangeSubpool(tree.ParentDir)
}

// line is the split form of an item line.
type line struct {
	name   string
	value  string
	unit   string
	help   string
	widget string
	valued bool
}

func (rd *reader) parseLine(lineNo int, text string) (line, error) {
	for _, delim := range []string{DelimValue, DelimUnit, DelimHelp} {
		if strings.Count(withoutWidget(text), delim) > 1 {
			return line{}, errors.New(rd.grammarError(lineNo, text, `more than one "`+delim+`"`))
		}
	}

	var parsed line

	rest, help, _ := strings.Cut(text, DelimHelp)
	rest, parsed.unit, _ = strings.Cut(rest, DelimUnit)
	parsed.name, parsed.value, parsed.valued = strings.Cut(rest, DelimValue)

	if before, widget, ok := strings.Cut(help, widgetKey); ok {
		help, parsed.widget = before, widget
	}

	parsed.name = strings.TrimSpace(parsed.name)
	parsed.value = strings.TrimSpace(parsed.value)
	parsed.unit = strings.TrimSpace(parsed.unit)
	parsed.help = strings.TrimSpace(help)
	parsed.widget = strings.TrimSpace(parsed.widget)
	parsed.valued = parsed.valued && parsed.value != ""

	if parsed.name == "" {
		return line{}, errors.New(rd.grammarError(lineNo, text, "no name"))
	}

	return parsed, nil
}

func (rd *reader) leaf(lineNo int, text string) error {
	parsed, err := rd.parseLine(lineNo, text)
	if err != nil {
		return err
	}

	rd.items++

	if rd.mode == ModeSetDefaults {
		return rd.setDefault(lineNo, text, parsed)
	}

	attrs := pool.Attributes{
		Name: parsed.name,
		Unit: parsed.unit,
		Help: parsed.help,
	}

	if widget := pool.Widget(parsed.widget); widget.IsValid() {
		attrs.Widget = widget
	}

	separator := rd.pool.Defaults().Separator
	values := splitValues(parsed.value, separator)

	if parsed.valued {
		attrs.Coercion, attrs.Default = InferValue(values[0])
	}

	item, err := rd.pool.AddItem(attrs)
	if err != nil {
		return err
	}

	if len(values) > 1 {
		return item.SetValue(parsed.value)
	}

	return nil
}

func (rd *reader) setDefault(lineNo int, text string, parsed line) error {
	if !parsed.valued {
		return errors.New(rd.grammarError(lineNo, text, "no value"))
	}

	path := tree.NewPath(rd.groups...).Join(parsed.name).String()

	item, ok := rd.pool.Index().Lookup(path)
	if !ok {
		return errors.New(tree.UnknownPathError{Path: path, Known: rd.pool.Index().Paths()})
	}

	raw := splitValues(parsed.value, rd.pool.Defaults().Separator)[0]
	if parsed.unit != "" {
		raw += " " + parsed.unit
	}

	return item.SetDefault(raw)
}

// InferValue picks the strategy for a literal the way a file declares it: int, float,
// bool, expression and otherwise string.
func InferValue(literal string) (pool.Coercion, any) {
	if value, err := strconv.Atoi(literal); err == nil {
		return pool.CoerceInt, value
	}

	if strings.ContainsAny(literal, "0123456789") {
		if value, err := strconv.ParseFloat(literal, 64); err == nil {
			return pool.CoerceFloat, value
		}
	}

	if value, err := pool.StrToBool(literal); err == nil {
		return pool.CoerceBool, value
	}

	if value, err := expr.Evaluate(literal, nil); err == nil {
		return pool.CoerceExpression, value
	}

	return pool.CoerceString, literal
}

func isGroupKeyword(word string) bool {
	return slices.Contains([]string{KeywordGroup, KeywordSubpool, KeywordSubmenu}, word)
}

// withoutWidget drops the "widget=" key of the help part, its "=" is not a delimiter.
func withoutWidget(text string) string {
	i := strings.Index(text, DelimHelp)
	if i < 0 {
		return text
	}

	j := strings.Index(text[i:], widgetKey)
	if j < 0 {
		return text
	}

	return text[:i+j] + text[i+j+len(widgetKey):]
}

func splitValues(str, separator string) []string {
	if str == "" {
		return nil
	}

	values := strings.Split(str, separator)
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	return values
}

func locatorPath(locator *tree.SubTree) []string {
	var names []string

	for !locator.IsRoot() {
		names = append([]string{locator.Name()}, names...)

		parent, err := locator.Parent()
		if err != nil {
			break
		}

		locator = parent
	}

	return names
}
