package rabbitmq

// Exchange — exchange кампаний рассылок.
const Exchange = "newsletters"

// Маршрутизация писем кампаний.
const (
	CampaignRoutingKey = "campaign"
	CampaignQueue      = "newsletter.campaign"
)

// QueueConfig связь очереди с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNewsletterQueues возвращает очереди воркера рассылок.
func GetNewsletterQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: CampaignQueue, RoutingKey: CampaignRoutingKey},
	}
}
