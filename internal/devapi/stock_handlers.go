package devapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equitydash/equitydash/internal/models"
)

func (s *Server) listBalances(c *gin.Context) {
	session, _ := GetSession(c)

	var holdings []Holding
	if err := s.db.Where("account_id = ?", session.AccountID).Order("id").Find(&holdings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list holdings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	balances := make([]models.StockBalance, len(holdings))
	for i, h := range holdings {
		balances[i] = models.StockBalance{
			ID:           h.ID,
			Type:         h.Type,
			Quantity:     h.Quantity,
			CurrentValue: h.CurrentValue,
			CurrencyCode: h.CurrencyCode,
		}
	}

	c.JSON(http.StatusOK, balances)
}

func (s *Server) listVesting(c *gin.Context) {
	session, _ := GetSession(c)

	var events []VestingEvent
	if err := s.db.Where("account_id = ?", session.AccountID).Order("vesting_date").Find(&events).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list vesting events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	schedules := make([]models.VestingSchedule, len(events))
	for i, e := range events {
		schedules[i] = models.VestingSchedule{
			ID:             e.ID,
			VestingDate:    e.VestingDate,
			Quantity:       e.Quantity,
			EstimatedValue: e.EstimatedValue,
			CurrencyCode:   e.CurrencyCode,
			Status:         e.Status,
		}
	}

	c.JSON(http.StatusOK, schedules)
}

func (s *Server) listTransactions(c *gin.Context) {
	session, _ := GetSession(c)

	var trades []Trade
	if err := s.db.Where("account_id = ?", session.AccountID).Order("date").Find(&trades).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list trades")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	transactions := make([]models.Transaction, len(trades))
	for i, t := range trades {
		transactions[i] = models.Transaction{
			ID:           t.ID,
			Date:         t.Date,
			Type:         t.Type,
			Quantity:     t.Quantity,
			Value:        t.Value,
			CurrencyCode: t.CurrencyCode,
		}
	}

	c.JSON(http.StatusOK, transactions)
}
