package redis_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/helper/env"
	"storeadmin/src/infra/redis"
)

// Precisa de um Redis de teste; sem TEST_REDIS_HOSTS os specs são pulados.
var _ = Describe("RedisClient", func() {
	var (
		client *redis.RedisClient
		ctx    context.Context
	)

	redisHosts := env.GetString("TEST_REDIS_HOSTS", "")

	BeforeEach(func() {
		if redisHosts == "" {
			Skip("TEST_REDIS_HOSTS not set")
		}

		ctx = context.Background()
		client = redis.NewRedisClient(redisHosts, 2, time.Minute)
		Expect(client.HealthCheck(ctx)).To(Succeed())

		Expect(client.InvalidateKeys(ctx, []string{
			"entity:Customer:c1",
			"entity:Customer:c2",
			"registry:entity:Customer",
		})).To(Succeed())
	})

	AfterEach(func() {
		if client != nil {
			Expect(client.Close()).To(Succeed())
		}
	})

	It("reports a miss for an unknown key", func() {
		// ACT
		value, found, err := client.GetKey(ctx, "entity:Customer:c1")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(value).To(BeEmpty())
	})

	It("stores the value and records the key in the registry", func() {
		// ACT
		err := client.SetWithRegistry(ctx, "entity:Customer:c1", `{"id":"c1"}`, []string{"registry:entity:Customer"})

		// ASSERT
		Expect(err).NotTo(HaveOccurred())

		value, found, err := client.GetKey(ctx, "entity:Customer:c1")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(MatchJSON(`{"id":"c1"}`))

		members, err := client.GetSetMembers(ctx, "registry:entity:Customer")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(ConsistOf("entity:Customer:c1"))
	})

	It("invalidates every listed key", func() {
		// ARRANGE
		registry := []string{"registry:entity:Customer"}
		Expect(client.SetWithRegistry(ctx, "entity:Customer:c1", `{"id":"c1"}`, registry)).To(Succeed())
		Expect(client.SetWithRegistry(ctx, "entity:Customer:c2", `{"id":"c2"}`, registry)).To(Succeed())

		// ACT
		err := client.InvalidateKeys(ctx, []string{"entity:Customer:c1", "registry:entity:Customer"})

		// ASSERT
		Expect(err).NotTo(HaveOccurred())

		_, found, _ := client.GetKey(ctx, "entity:Customer:c1")
		Expect(found).To(BeFalse())

		_, found, _ = client.GetKey(ctx, "entity:Customer:c2")
		Expect(found).To(BeTrue())

		members, err := client.GetSetMembers(ctx, "registry:entity:Customer")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(BeEmpty())
	})
})
