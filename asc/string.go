package asc

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/asc-runtime/errors"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// String is the guest's managed string class. Its content is UTF-16LE code
// units and its length is the header's rtSize in bytes.
type String struct {
	Units []uint16
}

func (String) AscTypeIndex() TypeIndex { return TypeIndexString }

func (s String) ToAscBytes() ([]byte, error) {
	b := make([]byte, 0, 2*len(s.Units))
	for _, u := range s.Units {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return b, nil
}

func (s *String) FromAscBytes(b []byte) error {
	if len(b)%2 != 0 {
		return errors.Deterministic(errors.New(errors.PhaseDecode, errors.KindInvalidData).
			AscType("String").
			Value(len(b)).
			Detail("odd byte length %d for UTF-16 content", len(b)).
			Build())
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	s.Units = units
	return nil
}

// StringFrom converts a Go string. Invalid UTF-8 becomes U+FFFD.
func StringFrom(s string) (String, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return String{}, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "encode UTF-16")
	}
	var out String
	// encoder output is always whole code units
	_ = out.FromAscBytes(b)
	return out, nil
}

// Text converts to a Go string. Unpaired surrogates become U+FFFD.
func (s String) Text() (string, error) {
	b, _ := s.ToAscBytes()
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Deterministic(errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "decode UTF-16"))
	}
	return string(out), nil
}

// NewString allocates s as a guest string.
func NewString(h Heap, s string) (Ptr[String], error) {
	str, err := StringFrom(s)
	if err != nil {
		return Ptr[String]{}, err
	}
	return Alloc(h, str)
}

// GetString reads the guest string at p.
func GetString(h Heap, p Ptr[String]) (string, error) {
	if p.IsNull() {
		return "", errors.Deterministic(errors.NilPointer(errors.PhaseDecode, "String"))
	}
	s, err := p.Read(h)
	if err != nil {
		return "", err
	}
	return s.Text()
}
