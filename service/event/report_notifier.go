/*
 * @module service/event/report_notifier
 * @description Notificador de reportes generados: publica el resumen de cada reporte
 * de calidad en un tópico Kafka cuando hay brokers configurados
 * @architecture Patrón adaptador - encapsula el cliente Kafka
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Reporte persistido -> serialización del resumen -> publicación
 * @rules Publicación de mejor esfuerzo: un fallo se registra, nunca aborta la corrida
 * @dependencies github.com/segmentio/kafka-go
 * @refs service/quality/service.go, service/init.go
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gestor-proyecto-service/service/models"

	"github.com/segmentio/kafka-go"
)

const defaultQualityTopic = "calidad-datos-reportes"

// ReportNotifier publica resúmenes de reportes de calidad en Kafka
type ReportNotifier struct {
	writer *kafka.Writer
}

// NewReportNotifierFromEnv crea el notificador cuando KAFKA_BROKERS está
// configurado; retorna nil en caso contrario (la notificación es opcional)
func NewReportNotifierFromEnv() *ReportNotifier {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_QUALITY_TOPIC")
	if topic == "" {
		topic = defaultQualityTopic
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	slog.Info("notificador de reportes de calidad habilitado",
		"brokers", brokers,
		"topic", topic)
	return &ReportNotifier{writer: writer}
}

// PublishReport publica el resumen del reporte, con el report_id como clave
func (n *ReportNotifier) PublishReport(ctx context.Context, summary models.ReportSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error serializando el resumen del reporte: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(summary.ReportID),
		Value: payload,
	}
	if err := n.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("error publicando el resumen del reporte: %w", err)
	}
	return nil
}

// Close cierra el productor Kafka
func (n *ReportNotifier) Close() error {
	if n == nil || n.writer == nil {
		return nil
	}
	return n.writer.Close()
}
