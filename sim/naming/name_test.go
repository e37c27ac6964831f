package naming

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Name", func() {
	It("should parse name", func() {
		name, err := ParseName("Router.Out[2]")
		Expect(err).NotTo(HaveOccurred())
		Expect(name.Tokens[0].ElemName).To(Equal("Router"))
		Expect(name.Tokens[0].Index).To(BeEmpty())
		Expect(name.Tokens[1].ElemName).To(Equal("Out"))
		Expect(name.Tokens[1].Index).To(Equal([]int{2}))
	})

	It("should accept valid names", func() {
		Expect(func() { NameMustBeValid("Line.Queue[0].In") }).NotTo(Panic())
	})

	It("should panic if the name is empty", func() {
		Expect(func() { NameMustBeValid("") }).To(Panic())
	})

	It("should panic if name include underscore", func() {
		Expect(func() { NameMustBeValid("Queue_0") }).To(Panic())
	})

	It("should panic if name is not capitalized CamelCase", func() {
		Expect(func() { NameMustBeValid("queue") }).To(Panic())
	})

	It("should panic if an element is empty", func() {
		Expect(func() { NameMustBeValid("Line..Queue") }).To(Panic())
	})

	It("should panic if brackets do not match", func() {
		Expect(func() { NameMustBeValid("Out[1") }).To(Panic())
	})

	It("should parse several indices", func() {
		name, err := ParseName("Grid[1][2]")
		Expect(err).NotTo(HaveOccurred())
		Expect(name.Tokens[0].ElemName).To(Equal("Grid"))
		Expect(name.Tokens[0].Index).To(Equal([]int{1, 2}))
	})

	It("should reject a non-integer index", func() {
		_, err := ParseName("Out[x]")
		Expect(err).To(MatchError(ContainSubstring("not an integer")))
	})

	It("should explain why a name is rejected", func() {
		err := Validate("Line.queue")
		Expect(err).To(MatchError(ContainSubstring("capital letter")))

		err = Validate("Out]1[")
		Expect(err).To(MatchError(ContainSubstring("brackets")))
	})

	It("should build names", func() {
		Expect(BuildName("", "Sink")).To(Equal("Sink"))
		Expect(BuildName("Line", "Sink")).To(Equal("Line.Sink"))
		Expect(BuildNameWithIndex("Router", "Out", 3)).To(Equal("Router.Out[3]"))
	})
})
