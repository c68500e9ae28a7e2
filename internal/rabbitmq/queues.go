package rabbitmq

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Очереди напоминаний о задачах.
const (
	QueueUpcoming = "notifications.tasks.upcoming"
	QueueOverdue  = "notifications.tasks.overdue"
)

// ReminderQueues очереди, которые читает отправитель уведомлений.
func ReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueUpcoming, RoutingKey: "tasks.upcoming"},
		{QueueName: QueueOverdue, RoutingKey: "tasks.overdue"},
	}
}
