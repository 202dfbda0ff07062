package retryhost_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	retryhost "github.com/searchkit/retryhost"
)

var _ = Describe("MemoryHostStateStore", func() {
	var store *retryhost.MemoryHostStateStore

	BeforeEach(func() {
		store = retryhost.NewMemoryHostStateStore()
	})

	It("defaults to cursor 0 for unknown application IDs", func() {
		Expect(store.Cursor("never-seen")).To(Equal(0))
	})

	It("advances the cursor by one and returns the new value", func() {
		Expect(store.Advance("APP")).To(Equal(1))
		Expect(store.Advance("APP")).To(Equal(2))
		Expect(store.Cursor("APP")).To(Equal(2))
	})

	It("keeps cursors independent across application IDs", func() {
		store.Advance("A")
		store.Advance("A")
		store.Advance("B")

		Expect(store.Cursor("A")).To(Equal(2))
		Expect(store.Cursor("B")).To(Equal(1))
		Expect(store.Cursor("C")).To(Equal(0))
	})

	It("resets the cursor to zero", func() {
		store.Advance("APP")
		store.Advance("APP")
		store.Reset("APP")

		Expect(store.Cursor("APP")).To(Equal(0))
	})

	It("resets only the named application ID", func() {
		store.Advance("A")
		store.Advance("B")
		store.Reset("A")

		Expect(store.Cursor("A")).To(Equal(0))
		Expect(store.Cursor("B")).To(Equal(1))
	})

	It("is safe under concurrent advances", func() {
		const goroutines = 16
		const perGoroutine = 100

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perGoroutine; j++ {
					store.Advance("APP")
					store.Cursor("APP")
				}
			}()
		}
		wg.Wait()

		Expect(store.Cursor("APP")).To(Equal(goroutines * perGoroutine))
	})
})

var _ = Describe("DefaultHostStateStore", func() {
	It("returns the same store on every call", func() {
		Expect(retryhost.DefaultHostStateStore()).To(BeIdenticalTo(retryhost.DefaultHostStateStore()))
	})
})
