package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportError_setsErrorStateAndCount(t *testing.T) {
	InitReporter(LogLevelSilent)
	src := NewSource("<test>", "x")

	assert.False(t, AnyErrors())
	ReportError(src, &Span{}, "undeclared variable %s", "x")
	ReportError(src, &Span{}, "arity mismatch")

	assert.True(t, AnyErrors())
	errs, warns := Counts()
	assert.Equal(t, 2, errs)
	assert.Equal(t, 0, warns)
}

func TestReportWarning_doesNotSetErrorState(t *testing.T) {
	InitReporter(LogLevelSilent)
	src := NewSource("<test>", "x")

	ReportWarning(src, &Span{}, "unused variable %s", "x")

	assert.False(t, AnyErrors())
	errs, warns := Counts()
	assert.Equal(t, 0, errs)
	assert.Equal(t, 1, warns)
}

func TestDie_nilWhenNoErrors(t *testing.T) {
	InitReporter(LogLevelSilent)
	assert.NoError(t, Die())
}

func TestDie_errorWhenErrorsRecorded(t *testing.T) {
	InitReporter(LogLevelSilent)
	src := NewSource("<test>", "x")
	ReportError(src, &Span{}, "boom")

	err := Die()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error")
}

func TestCatchErrors_recoversRaisedCompileError(t *testing.T) {
	InitReporter(LogLevelSilent)
	src := NewSource("<test>", "x")

	func() {
		defer CatchErrors(src)
		panic(Raise(&Span{}, "unexpected token %s", "}"))
	}()

	assert.True(t, AnyErrors())
}

func TestCatchErrors_recoversArbitraryError(t *testing.T) {
	InitReporter(LogLevelSilent)
	src := NewSource("<test>", "x")

	func() {
		defer CatchErrors(src)
		panic(assert.AnError)
	}()

	assert.True(t, AnyErrors())
}

func TestCatchErrors_doesNotRecoverWhenNothingPanicked(t *testing.T) {
	InitReporter(LogLevelSilent)
	assert.NotPanics(t, func() {
		defer CatchErrors(NewSource("<test>", "x"))
	})
	assert.False(t, AnyErrors())
}

func TestOver_spansFromStartOfAToEndOfB(t *testing.T) {
	a := &Span{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}
	b := &Span{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 4}

	got := Over(a, b)
	assert.Equal(t, &Span{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 4}, got)
}
