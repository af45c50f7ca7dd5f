package primitive

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type tier string

type score float32

type customer struct {
	ID      uint64
	Name    string
	Tier    tier
	Score   score
	Active  bool
	Avatar  []byte
	Joined  time.Time
	Timeout time.Duration
	Tags    []string
	Payload json.RawMessage
}

func TestKindOfRecordFields(t *testing.T) {
	want := map[string]struct {
		exact KindEnum
		kind  KindEnum
	}{
		"ID":      {KindUint64, KindUint64},
		"Name":    {KindString, KindString},
		"Tier":    {KindPrimitiveEnum, KindString},
		"Score":   {KindPrimitiveEnum, KindFloat32},
		"Active":  {KindBool, KindBool},
		"Avatar":  {KindBytes, KindBytes},
		"Joined":  {KindTime, KindTime},
		"Timeout": {KindDuration, KindDuration},
		"Tags":    {0, 0},
		"Payload": {KindPrimitiveEnum, KindBytes},
	}

	for _, f := range reflect.VisibleFields(reflect.TypeFor[customer]()) {
		t.Run(f.Name, func(t *testing.T) {
			w := want[f.Name]
			assert.Equal(t, w.exact, FromReflectType(f.Type))
			assert.Equal(t, w.kind, KindOf(f.Type))
		})
	}

	assert.Equal(t, KindEnum(0), FromReflectType(nil))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindUint64.IsNumber())
	assert.True(t, KindUint64.IsUnsigned())
	assert.False(t, KindUint64.IsSigned())
	assert.True(t, KindInt8.IsSigned())
	assert.True(t, KindFloat32.IsFloat())
	assert.False(t, KindFloat32.IsInteger())
	assert.False(t, KindString.IsNumber())
	assert.False(t, KindDuration.IsNumber())

	assert.Equal(t, 8, KindUint8.Bits())
	assert.Equal(t, 32, KindFloat32.Bits())
	assert.Equal(t, 64, KindInt64.Bits())
	assert.Contains(t, []int{32, 64}, KindInt.Bits())
	assert.Panics(t, func() { KindString.Bits() })
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "KindBytes", KindBytes.String())
	assert.Equal(t, "KindPrimitiveEnum", KindPrimitiveEnum.String())
	assert.Equal(t, "KindEnum(0)", KindEnum(0).String())
}
