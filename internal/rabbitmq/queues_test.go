package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderQueues(t *testing.T) {
	queues := ReminderQueues()
	require.Len(t, queues, 2)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
		assert.NotEmpty(t, q.RoutingKey)
	}
	assert.Equal(t, "tasks.upcoming", queues[0].RoutingKey)
	assert.Equal(t, "tasks.overdue", queues[1].RoutingKey)
}
