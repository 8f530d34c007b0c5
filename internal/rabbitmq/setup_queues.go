package rabbitmq

// RoutingKeyRoleChanged — ключ маршрутизации события смены роли пользователя.
const RoutingKeyRoleChanged = "role.changed"

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди, которые объявляет сервис.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notifications.role_changed", RoutingKey: RoutingKeyRoleChanged},
	}
}
