package asc

import (
	"strconv"

	"github.com/wippyai/asc-runtime/errors"
)

// TypeIndex identifies a managed type independently of any particular
// guest module. The module-specific runtime id is resolved through
// Heap.TypeID.
type TypeIndex uint32

const (
	// TypeIndexString is the guest's built-in string class.
	TypeIndexString TypeIndex = 0
)

func (i TypeIndex) String() string {
	switch i {
	case TypeIndexString:
		return "String"
	}
	return "TypeIndex(" + strconv.FormatUint(uint64(i), 10) + ")"
}

// EncodeTypeIndex returns the 4-byte little-endian discriminant of i.
func EncodeTypeIndex(i TypeIndex) []byte {
	return EncodeValue(uint32(i))
}

// DecodeTypeIndex decodes a discriminant, rejecting any value outside the
// locally known set.
func DecodeTypeIndex(b []byte) (TypeIndex, error) {
	disc, err := DecodeValue[uint32](b)
	if err != nil {
		return 0, err
	}
	switch TypeIndex(disc) {
	case TypeIndexString:
		return TypeIndexString, nil
	}
	return 0, errors.Deterministic(errors.InvalidDiscriminant(errors.PhaseDecode, "TypeIndex", disc))
}

func (i TypeIndex) ToAscBytes() ([]byte, error) {
	return EncodeTypeIndex(i), nil
}

func (i *TypeIndex) FromAscBytes(b []byte) error {
	v, err := DecodeTypeIndex(b)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (TypeIndex) AscSize() uint32 { return 4 }
