// Package convert rewrites Rust constant tables written in radix 2^51 limbs
// into tables of canonical 32-byte encodings.
//
// A literal such as
//
//	pub(crate) const EDWARDS_D: FieldElement51 = FieldElement51([
//	    929955233495203,
//	    466365720129213,
//	    1662059464998953,
//	    2033849074728123,
//	    1442794654840575,
//	]);
//
// becomes
//
//	pub(crate) const EDWARDS_D: Engine25519 = Engine25519([
//	    163, 120, 89, 19, 202, 77, 235, 117, ..., 3, 82,
//	]);
//
// Single line literals, FieldElement51([1, 0, 0, 0, 0]) or
// FieldElement51::from_limbs([1, 0, 0, 0, 0]), are rewritten in place.
// Multi-line literals may be opened through a constructor as well, and the
// opening line may end in a comment. Every other occurrence of the type name
// is renamed, and all other lines are copied unchanged.
package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/op/go-logging.v1"

	"github.com/bunnie/genconstants-25519/field"
	"github.com/bunnie/genconstants-25519/internal/rustfmt"
)

const (
	limbCount = 5

	// maxLineLength bounds a single source line.
	maxLineLength = 1 << 20
)

type literalState int

const (
	literalNone literalState = iota
	literalOpen
	literalPartial
)

// Converter converts Rust sources from SourceType limb literals to
// TargetType byte literals.
type Converter struct {
	SourceType string
	TargetType string

	log *logging.Logger
}

// New returns a Converter. A nil log discards log output.
func New(sourceType, targetType string, log *logging.Logger) *Converter {
	if log == nil {
		log = logging.MustGetLogger("convert")
		log.SetBackend(logging.AddModuleLevel(logging.NewLogBackend(io.Discard, "", 0)))
	}
	return &Converter{
		SourceType: sourceType,
		TargetType: targetType,
		log:        log,
	}
}

// Encode returns the canonical encoding of the field element with the given
// limbs, as the comma separated byte list used inside a Rust array literal.
func Encode(limbs [limbCount]uint64) string {
	return rustfmt.List(new(field.Element).SetLimbs(limbs).Bytes())
}

// ParseLimb parses a single limb line, ignoring surrounding whitespace and a
// trailing comma.
func ParseLimb(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	s = strings.TrimSpace(s)
	return strconv.ParseUint(s, 10, 64)
}

// Convert reads a Rust source from r and writes the converted source to w.
// It returns the number of converted literals.
func (c *Converter) Convert(r io.Reader, w io.Writer) (int, error) {
	if c.SourceType == "" || c.TargetType == "" {
		return 0, errors.New("convert: source and target type names must be set")
	}
	inline := regexp.MustCompile(regexp.QuoteMeta(c.SourceType) + `(::\w+)?\(\[([^\]]*)\]\)`)

	var (
		converted  int
		limbs      [limbCount]uint64
		collected  int
		collecting bool
		startLine  int
		indent     string
	)

	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineLength)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if collecting {
			limb, err := ParseLimb(line)
			if err != nil {
				return converted, fmt.Errorf("convert: line %d: invalid limb: %w", lineNo, err)
			}
			if collected == 0 {
				indent = leadingSpace(line)
			}
			limbs[collected] = limb
			collected++
			if collected == limbCount {
				c.log.Debugf("line %d: %v", startLine, limbs)
				if _, err := fmt.Fprintf(bw, "%s%s,\n", indent, Encode(limbs)); err != nil {
					return converted, err
				}
				collecting = false
				converted++
			}
			continue
		}

		if !strings.Contains(line, c.SourceType) {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return converted, err
			}
			continue
		}

		out, n, err := c.convertInline(inline, line)
		if err != nil {
			return converted, fmt.Errorf("convert: line %d: %w", lineNo, err)
		}
		converted += n
		if _, err := fmt.Fprintln(bw, out); err != nil {
			return converted, err
		}

		// A literal left open at the end of the line carries its limbs on
		// the following lines. Imports only rename the type.
		if strings.Contains(line, "super") {
			continue
		}
		switch c.openLiteral(line) {
		case literalOpen:
			collecting = true
			collected = 0
			startLine = lineNo
		case literalPartial:
			return converted, fmt.Errorf("convert: line %d: %s literal must have all or none of its limbs on the opening line", lineNo, c.SourceType)
		}
	}
	if err := sc.Err(); err != nil {
		return converted, fmt.Errorf("convert: line %d: %w", lineNo+1, err)
	}
	if collecting {
		return converted, fmt.Errorf("convert: line %d: literal ended after %d of %d limbs", startLine, collected, limbCount)
	}

	c.log.Infof("converted %d %s literals to %s", converted, c.SourceType, c.TargetType)
	return converted, bw.Flush()
}

// convertInline renames the source type in line and rewrites every
// complete single line literal on it, Type([l0, l1, l2, l3, l4]) or
// Type::constructor([l0, l1, l2, l3, l4]).
func (c *Converter) convertInline(inline *regexp.Regexp, line string) (string, int, error) {
	var sb strings.Builder
	n, last := 0, 0
	for _, m := range inline.FindAllStringSubmatchIndex(line, -1) {
		limbs, err := parseLimbList(line[m[4]:m[5]])
		if err != nil {
			return "", n, err
		}
		c.log.Debugf("inline: %v", limbs)

		sb.WriteString(strings.ReplaceAll(line[last:m[0]], c.SourceType, c.TargetType))
		sb.WriteString(c.TargetType)
		if m[2] >= 0 {
			sb.WriteString(line[m[2]:m[3]])
		}
		sb.WriteString("([")
		sb.WriteString(Encode(limbs))
		sb.WriteString("])")
		last = m[1]
		n++
	}
	sb.WriteString(strings.ReplaceAll(line[last:], c.SourceType, c.TargetType))

	return sb.String(), n, nil
}

func parseLimbList(s string) ([limbCount]uint64, error) {
	var limbs [limbCount]uint64
	fields := strings.Split(s, ",")
	if len(fields) == limbCount+1 && strings.TrimSpace(fields[limbCount]) == "" {
		fields = fields[:limbCount]
	}
	if len(fields) != limbCount {
		return limbs, fmt.Errorf("expected %d limbs, got %d", limbCount, len(fields))
	}
	for k, f := range fields {
		limb, err := ParseLimb(f)
		if err != nil {
			return limbs, fmt.Errorf("invalid limb: %w", err)
		}
		limbs[k] = limb
	}
	return limbs, nil
}

// openLiteral reports whether line leaves a literal of the source type
// unclosed, such as Type([ or Type::from_limbs([ with an optional trailing
// comment. Comment lines never open a literal.
func (c *Converter) openLiteral(line string) literalState {
	code, _, _ := strings.Cut(line, "//")
	i := strings.LastIndex(code, c.SourceType)
	if i < 0 {
		return literalNone
	}
	code = code[i+len(c.SourceType):]
	j := strings.LastIndex(code, "([")
	if j < 0 || strings.Contains(code[j:], "])") {
		return literalNone
	}
	if strings.TrimSpace(code[j+len("(["):]) != "" {
		return literalPartial
	}
	return literalOpen
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
