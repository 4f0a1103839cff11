package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
)

// Prompter writes prompts and reads one line of input per prompt.
// Blank lines and end of input both coerce to an absent value (nil).
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// String prompts and returns the trimmed line, or nil when blank.
func (p *Prompter) String(prompt string) (*string, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return nil, err
	}
	return CoerceString(line), nil
}

// Int prompts and parses a base-10 integer.
func (p *Prompter) Int(prompt string) (*int, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return nil, err
	}
	return CoerceInt(line)
}

// Decimal prompts and parses a decimal rounded to two fractional digits.
func (p *Prompter) Decimal(prompt string) (*decimal.Decimal, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return nil, err
	}
	return CoerceDecimal(line)
}

func (p *Prompter) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", &InputError{Err: err}
	}
	line, err := p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		// a final line without newline still counts; nothing at all is blank
		return line, nil
	}
	if err != nil {
		return "", &InputError{Err: err}
	}
	return line, nil
}

// CoerceString returns the trimmed text, or nil for blank input.
func CoerceString(line string) *string {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil
	}
	return &s
}

// CoerceInt parses a base-10 integer. Blank input yields nil.
func CoerceInt(line string) (*int, error) {
	s := CoerceString(line)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil, &ValidationError{Input: *s, Kind: "number"}
	}
	return &n, nil
}

// maxDecimalIntegerDigits bounds the integer part of a decimal answer.
// Round scales by a power of ten, so exponent notation such as "1e200000000"
// must be rejected before rounding.
const maxDecimalIntegerDigits = 15

// CoerceDecimal parses a decimal literal and rounds it half away from zero to
// two fractional digits. Blank input yields nil.
func CoerceDecimal(line string) (*decimal.Decimal, error) {
	s := CoerceString(line)
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, &ValidationError{Input: *s, Kind: "decimal number"}
	}

	// digits before the decimal point; negative for values below 0.1
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	switch {
	case d.IsZero(), magnitude < -domain.HoursScale:
		// below 0.001 in absolute value, which rounds to zero
		d = decimal.New(0, -domain.HoursScale)
	case magnitude > maxDecimalIntegerDigits:
		return nil, &ValidationError{Input: *s, Kind: "decimal number"}
	default:
		d = d.Round(domain.HoursScale)
	}
	return &d, nil
}
