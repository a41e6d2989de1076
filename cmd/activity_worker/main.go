package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DonOmbisi/kilimo3/config"
	"github.com/DonOmbisi/kilimo3/pkg/activity"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

// The activity worker drains the marketplace activity queue and mirrors
// searchable documents into Elasticsearch. Events without a document payload
// are acknowledged and skipped.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQActivityQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch client: %v", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQActivityQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQActivityQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev activity.Event
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			index := indexFor(cfg, ev.Type)
			if index == "" || ev.Document == nil {
				_ = msg.Ack(false)
				continue
			}

			if err := indexDocument(ctx, es, index, ev); err != nil {
				log.Printf("index %s failed: %v", ev.EntityID, err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("activity worker listening on queue=%s", cfg.RabbitMQActivityQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func indexFor(cfg *config.Config, eventType string) string {
	switch eventType {
	case activity.ListingCreated:
		return cfg.ESListingsIndex
	case activity.FundraiserOpened:
		return "fundraisers"
	default:
		return ""
	}
}

func indexDocument(ctx context.Context, es *elasticsearch.Client, index string, ev activity.Event) error {
	body, err := json.Marshal(ev.Document)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: ev.EntityID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(c, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.Status())
	}
	return nil
}
