package service

import (
	"context"
	"testing"

	mock_mail "github.com/ccfreem/sickfits/internal/infra/mail/mock"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	require.Equal(t, "$0.00", FormatMoney(0))
	require.Equal(t, "$9.99", FormatMoney(999))
	require.Equal(t, "$123.45", FormatMoney(12345))
	require.Equal(t, "$50.00", FormatMoney(5000))
}

func TestSendReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mock_mail.NewMockEmailSender(ctrl)
	svc := NewMailService(sender)

	order := model.OrderModel{
		ID:     uuid.New(),
		Total:  3999,
		Charge: "ch_1",
		Items: []model.OrderItemModel{
			{Title: "<b>hat</b>", Price: 1500, Quantity: 2},
			{Title: "scarf", Price: 999, Quantity: 1},
		},
	}

	sender.EXPECT().
		SendEmail("Your Sick Fits order", gomock.Any(), []string{"wes@example.com"}, gomock.Nil(), gomock.Nil(), gomock.Nil()).
		DoAndReturn(func(subject, content string, to, cc, bcc, attach []string) error {
			require.Contains(t, content, "$39.99")
			require.Contains(t, content, "$30.00")
			require.Contains(t, content, "&lt;b&gt;hat&lt;/b&gt;")
			require.Contains(t, content, order.ID.String())
			return nil
		})

	require.NoError(t, svc.SendReceipt(context.Background(), ReceiptData{Name: "Wes", Email: "wes@example.com", Order: order}))
}
