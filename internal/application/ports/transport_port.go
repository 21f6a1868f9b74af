package ports

import (
	"context"
	"net/url"
)

// Transport puerto del cliente HTTP compartido. body y out se (de)serializan como JSON;
// out nil descarta la respuesta. Todo error devuelto es *domain.APIError.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}
