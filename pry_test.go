package pry_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/pry"
	"github.com/toejough/pry/match"
)

type adder struct {
	offset int
	last   *int
}

func (a *adder) add(x, y int) int {
	sum := a.offset + x + y
	a.last = &sum

	return sum
}

func defaultAdder() *adder {
	return &adder{offset: 100}
}

//nolint:gochecknoinits // the registration prygen generates lives in init
func init() {
	pry.Bind[*adder]("add", (*adder).add)
	pry.BindStatic[adder]("defaultAdder", defaultAdder)
}

func TestInvoke_PrivateAdd(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	acc, err := pry.Open(&adder{})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(pry.InvokeAs[int](acc, "add", 2, 3)).To(Equal(5))
}

func TestNew_FailsTestOnMiss(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sub := pry.New(t, &adder{offset: 1})

	g.Expect(sub.Has("last")).To(BeFalse())
	g.Expect(sub.Call("add", 1, 1)).To(Equal([]any{3}))
	sub.FieldShould("last", match.BeSet)
	sub.FieldShould("offset", match.Satisfy(func(offset int) error {
		if offset != 1 {
			return fmt.Errorf("offset %d", offset)
		}

		return nil
	}))
	sub.FieldShould("offset", BeNumerically("==", 1))
}

func TestBindStatic_InvokeStatic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	results, err := pry.InvokeStatic[adder]("defaultAdder")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(ConsistOf(&adder{offset: 100}))
	g.Expect(pry.StaticMembers[adder]()).To(Equal([]string{"defaultAdder"}))

	_, err = pry.InvokeStatic[adder]("other")
	g.Expect(err).To(MatchError(pry.ErrMemberNotFound))
}

func TestBind_PanicsOnMalformedBinding(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() { pry.Bind[*adder]("add", "not a function") }).
		To(PanicWith(ContainSubstring("pry.Bind: invalid binding")))
	g.Expect(func() { pry.BindStatic[adder]("", defaultAdder) }).
		To(PanicWith(ContainSubstring("pry.BindStatic: invalid binding")))
}

func TestBindScoped(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type meter struct{ reading int }

	t.Run("bound", func(t *testing.T) {
		g := NewWithT(t)

		pry.BindScoped[*meter](t, "reading", func(m *meter) int { return m.reading })

		acc, err := pry.Open(&meter{reading: 9})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(acc.Invoke("reading")).To(Equal([]any{9}))
	})

	acc, err := pry.Open(&meter{reading: 9})
	g.Expect(err).NotTo(HaveOccurred())

	_, err = acc.Invoke("reading")
	g.Expect(err).To(MatchError(pry.ErrMemberNotFound), "binding ends with the subtest")
}

func TestGetAs_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	acc, err := pry.Open(adder{offset: 4}, pry.WithoutSuggestions())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(pry.GetAs[int](acc, "offset")).To(Equal(4))
	g.Expect(acc.Set("offset", 5)).To(MatchError(pry.ErrReadOnly))

	_, err = pry.GetAs[int](acc, "ofset")
	g.Expect(err).To(MatchError(pry.ErrMemberNotFound))
	g.Expect(err.Error()).NotTo(ContainSubstring("did you mean"))

	_, err = pry.Open(nil)
	g.Expect(err).To(MatchError(pry.ErrInvalidSubject))
}

func TestWithConversion(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	subject := &adder{}

	acc, err := pry.Open(subject, pry.WithConversion())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(acc.Set("offset", int64(7))).To(Succeed())
	g.Expect(subject.offset).To(Equal(7))

	ok, msg := pry.MatchValue(subject.offset, 8)
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(ContainSubstring("expected 8, got 7"))
	g.Expect(acc.Set("offset", "7")).To(MatchError(pry.ErrTypeMismatch))
}
