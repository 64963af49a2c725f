package account_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/pry"
	account "github.com/toejough/pry/UAT/02-unexported-methods"
)

//go:generate go run ../../prygen Account --static newAccount --static fee

func TestInvokeUnexportedMethods(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	acc := account.Open("ada")
	sub := pry.New(t, acc)

	sub.Call("deposit", 150)
	sub.FieldShould("balance", 150)

	results := sub.Call("withdraw", 50)
	g.Expect(results).To(HaveExactElements(BeNil()))
	sub.FieldShould("history", []int{150, -50})

	results = sub.Call("withdraw", 500)
	g.Expect(results[0]).To(MatchError(ContainSubstring("overdrawn")))
	sub.FieldShould("balance", 100)
}

func TestValueReceiverAndVariadic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, err := pry.Open(account.Open("bo"))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(handle.Set("balance", 7)).To(Succeed())
	g.Expect(pry.InvokeAs[string](handle, "summary", "> ")).To(Equal("> bo: 7"))
	g.Expect(pry.InvokeAs[string](handle, "summary", "", "frozen", "audited")).To(Equal("bo: 7 frozen audited"))

	snapshot, err := pry.Open(*account.Open("cy"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pry.InvokeAs[string](snapshot, "summary", "")).To(Equal("cy: 0"))
}

func TestStaticMembers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(pry.StaticMembers[account.Account]()).To(Equal([]string{"fee", "newAccount"}))

	results, err := pry.InvokeStatic[account.Account]("newAccount", "di", 40)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(1))

	created := pry.New(t, results[0])
	created.FieldShould("owner", "di")
	created.FieldShould("balance", 40)

	g.Expect(pry.InvokeStatic[account.Account]("fee", 250)).To(Equal([]any{2}))
}

func TestTransferUsesTheSameMethods(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	from, to := account.Open("ed"), account.Open("fy")
	pry.New(t, from).Call("deposit", 1000)

	g.Expect(account.Transfer(from, to, 500)).To(Succeed())
	pry.New(t, from).FieldShould("balance", 495)
	pry.New(t, to).FieldShould("history", []int{500})
}

func TestMembersListsBindings(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, err := pry.Open(account.Open("gil"))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(handle.Members()).To(Equal([]string{"balance", "deposit", "history", "owner", "summary", "withdraw"}))
}
