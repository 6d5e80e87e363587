package data

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	notifPrefix  = "notif:"
	streamEvents = "editais.notificacoes"

	// Janela do fast-path de duplicata. A chave composta no MySQL é a
	// garantia real; a chave no Redis é só um indício, e uma reserva
	// órfã (processo caiu antes do insert) nunca deve rejeitar sozinha.
	notifTTL = 24 * time.Hour
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func notifKey(editalID uint64, cpf string) string {
	return fmt.Sprintf("%s%d:%s", notifPrefix, editalID, cpf)
}

// ReserveNotificacao tenta reservar o par (edital, cpf). Retorna false
// quando outra submissão já reservou dentro da janela; o chamador ainda
// consulta o banco, que é quem decide.
func ReserveNotificacao(ctx context.Context, rdb *redis.Client, editalID uint64, cpf string) (bool, error) {
	return rdb.SetNX(ctx, notifKey(editalID, cpf), "1", notifTTL).Result()
}

// ReleaseNotificacao desfaz a reserva quando a inserção falha por
// motivo que não seja duplicata.
func ReleaseNotificacao(ctx context.Context, rdb *redis.Client, editalID uint64, cpf string) error {
	return rdb.Del(ctx, notifKey(editalID, cpf)).Err()
}

// PublishNotificacao publica o evento de pedido criado para o worker
// de e-mail consumir.
func PublishNotificacao(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamEvents,
		Values: payload,
	}).Result()
	return err
}
