package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-orders/internal/domain"
	ordersvc "storefront-orders/internal/service/order"
)

type orderResponse struct {
	Success bool   `json:"success"`
	OK      bool   `json:"ok"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// ordersHandler is the remote persistence endpoint: it validates the inbound
// order and appends it to the shared orders document.
func ordersHandler(logger *log.Logger, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !deps.StoreConfigured {
			logger.Printf("orders: rejected, store not configured")
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "server misconfigured"})
			return
		}

		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "could not read request body"})
			return
		}

		order, err := ordersvc.NormalizeBody(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		id, err := deps.OrderSvc.Accept(c.Request.Context(), order)
		if err != nil {
			var badReq *ordersvc.BadRequestError
			switch {
			case errors.As(err, &badReq):
				c.JSON(http.StatusBadRequest, errorResponse{Error: badReq.Reason})
			case errors.Is(err, domain.ErrConflict):
				logger.Printf("orders: conflicting write, caller should retry: %v", err)
				c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not save order", Detail: "conflicting write, retry"})
			default:
				logger.Printf("orders: persistence error=%v", err)
				c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not save order", Detail: err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, orderResponse{Success: true, OK: true, ID: id})
	}
}
