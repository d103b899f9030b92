package models

import "time"

const BookingStatusConfirmed = "confirmed"

type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TrainerID   int64     `json:"trainer_id"`
	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	SessionType string    `json:"session_type"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Subscription struct {
	ID             int64     `json:"subscription_id"`
	UserID         int64     `json:"user_id"`
	Cardholder     string    `json:"cardholder"`
	CardLast4      string    `json:"card_last4"`
	ExpDate        time.Time `json:"exp_date"`
	PlanPurchased  string    `json:"plan_purchased"`
	DateOfPurchase time.Time `json:"date_of_purchase"`
}
