package machine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/mocks"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testMachine struct {
	*Machine
	cpu     *cpu.CPU
	display *mocks.Display
	audio   *mocks.Audio
}

func newTestMachine(t *testing.T, frequency int, program ...uint16) *testMachine {
	t.Helper()

	data := make([]byte, 0, 2*len(program))
	for _, word := range program {
		data = append(data, byte(word>>8), byte(word))
	}
	mem := memory.New()
	assert.NoError(t, mem.LoadProgram(data))

	disp := &mocks.Display{}
	aud := &mocks.Audio{}
	c := cpu.New(mem, disp, &mocks.Input{})

	m, err := New(c, disp, aud, WithFrequency(frequency), WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)
	return &testMachine{Machine: m, cpu: c, display: disp, audio: aud}
}

// tickTime returns the time the n-th 60 Hz tick is due.
func tickTime(start time.Time, n int) time.Time {
	return start.Add(time.Duration(n) * time.Second / TickRate)
}

func TestNew_InvalidFrequency(t *testing.T) {
	_, err := New(nil, nil, nil, WithFrequency(0))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidFrequency))
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, DefaultFrequency, m.Frequency())
	assert.Equal(t, 2*time.Millisecond, m.interval)
}

func TestStep_TickBeforeInstruction(t *testing.T) {
	// V0 = 2, DT = V0, V1 = DT
	m := newTestMachine(t, 500, 0x6002, 0xF015, 0xF107)
	start := time.Unix(1000, 0)

	assert.NoError(t, m.Step(start))
	assert.NoError(t, m.Step(start.Add(2*time.Millisecond)))
	assert.Equal(t, byte(2), m.cpu.DelayTimer())
	assert.Equal(t, int64(0), m.Ticks())

	assert.NoError(t, m.Step(start.Add(17*time.Millisecond)))
	assert.Equal(t, int64(1), m.Ticks())
	assert.Equal(t, byte(1), m.cpu.Register(1))
	assert.Equal(t, 1, m.display.Renders)
	assert.Equal(t, uint64(3), m.Instructions())
}

func TestStep_MarkerAdvancesByPeriod(t *testing.T) {
	m := newTestMachine(t, 500, 0x1200)
	start := time.Unix(1000, 0)

	assert.NoError(t, m.Step(start))
	assert.NoError(t, m.Step(start.Add(20*time.Millisecond)))
	assert.Equal(t, int64(1), m.Ticks())

	// 14ms after the previous wakeup but past the second period boundary
	assert.NoError(t, m.Step(start.Add(34*time.Millisecond)))
	assert.Equal(t, int64(2), m.Ticks())

	assert.NoError(t, m.Step(start.Add(35*time.Millisecond)))
	assert.Equal(t, int64(2), m.Ticks())

	// at most one tick per wakeup
	assert.NoError(t, m.Step(start.Add(200*time.Millisecond)))
	assert.Equal(t, int64(3), m.Ticks())
}

func TestStep_NoDrift(t *testing.T) {
	m := newTestMachine(t, 500, 0x1200)
	start := time.Unix(1000, 0)

	for i := range 500 {
		assert.NoError(t, m.Step(start.Add(time.Duration(i)*2*time.Millisecond)))
	}
	// wakeups up to 998ms cover the ticks at n/60 s for n = 1..59
	assert.Equal(t, int64(59), m.Ticks())
	assert.NoError(t, m.Step(start.Add(time.Second)))
	assert.Equal(t, int64(60), m.Ticks())
}

func TestStep_DelayTimerSaturates(t *testing.T) {
	// V0 = 60, DT = V0, loop
	m := newTestMachine(t, 60, 0x603C, 0xF015, 0x1204)
	start := time.Unix(1000, 0)

	assert.NoError(t, m.Step(start))
	assert.NoError(t, m.Step(start))
	assert.Equal(t, byte(60), m.cpu.DelayTimer())

	for n := 1; n <= 60; n++ {
		assert.NoError(t, m.Step(tickTime(start, n)))
	}
	assert.Equal(t, int64(60), m.Ticks())
	assert.Equal(t, byte(0), m.cpu.DelayTimer())

	assert.NoError(t, m.Step(tickTime(start, 61)))
	assert.Equal(t, byte(0), m.cpu.DelayTimer())
}

func TestStep_AudioGate(t *testing.T) {
	// V0 = 2, ST = V0, loop
	m := newTestMachine(t, 60, 0x6002, 0xF018, 0x1204)
	start := time.Unix(1000, 0)

	assert.NoError(t, m.Step(start))
	assert.NoError(t, m.Step(start))
	assert.False(t, m.audio.Playing)

	assert.NoError(t, m.Step(tickTime(start, 1)))
	assert.True(t, m.audio.Playing)
	assert.Equal(t, byte(1), m.cpu.SoundTimer())

	assert.NoError(t, m.Step(tickTime(start, 2)))
	assert.False(t, m.audio.Playing)

	assert.NoError(t, m.Step(tickTime(start, 3)))
	assert.Equal(t, 1, m.audio.Starts)
	assert.Equal(t, 1, m.audio.Stops)
	assert.Equal(t, 3, m.display.Renders)
}

func TestStep_Fault(t *testing.T) {
	m := newTestMachine(t, 500, 0x00EE)

	err := m.Step(time.Unix(1000, 0))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))

	var fault *cpu.FaultError
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.PC)
	assert.Equal(t, uint16(0x00EE), fault.Opcode)
}

func TestRun_Cancel(t *testing.T) {
	m := newTestMachine(t, 1000, 0x1200)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, m.Instructions() > 0)
	assert.False(t, m.audio.Playing)
}

func TestRun_Fault(t *testing.T) {
	m := newTestMachine(t, 1000, 0x6001, 0xF118, 0x0000)

	err := m.Run(context.Background())
	assert.True(t, errors.Is(err, cpu.ErrUndefinedInstruction))
	assert.Equal(t, uint64(3), m.Instructions())
}
