package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// CampaignPublisher публикует письма кампаний в обменник рассылок.
type CampaignPublisher struct {
	ch *amqp.Channel
}

// NewCampaignPublisher создает новый экземпляр CampaignPublisher.
func NewCampaignPublisher(ch *amqp.Channel) *CampaignPublisher {
	return &CampaignPublisher{ch: ch}
}

// Publish отправляет одно письмо кампании в очередь отправителя.
func (p *CampaignPublisher) Publish(letter models.CampaignLetter) error {
	return PublishMessage(p.ch, Exchange, CampaignRoutingKey, letter)
}
