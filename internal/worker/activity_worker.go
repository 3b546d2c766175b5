package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// ActivityWorker drains the activity queue and persists audit rows. Requests
// never write the audit table directly.
type ActivityWorker struct {
	conn      *amqp.Connection
	repo      *repository.ActivityRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityWorker(conn *amqp.Connection, repo *repository.ActivityRepository, queueName string) *ActivityWorker {
	return &ActivityWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume activity queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handleDelivery(d)
			}
		}
	}()

	return nil
}

// handleDelivery persists one queued activity. Undecodable and
// unpersistable deliveries are dropped without requeue; a poison payload
// must not circulate forever.
func (w *ActivityWorker) handleDelivery(d amqp.Delivery) {
	var activity model.Activity
	if err := json.Unmarshal(d.Body, &activity); err != nil {
		log.Printf("worker decode activity failed: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.repo.Create(&activity); err != nil {
		log.Printf("worker persist activity failed: %v", err)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

func (w *ActivityWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
