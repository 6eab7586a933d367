package services

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/latable-app/reservation-backend/config"
	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/utils"
)

// Mailer envoie les notifications de réservation. L'envoi est strictement
// best-effort : un échec SMTP est journalisé puis avalé, il ne doit jamais
// faire échouer la réservation elle-même.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	operator string
}

// NewMailer construit le mailer depuis la configuration. Sans hôte SMTP
// configuré, le mailer est désactivé et chaque envoi est simplement journalisé.
func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		from:     cfg.SMTPUser,
		operator: cfg.OperatorEmail,
	}
	if cfg.SMTPHost == "" {
		return m
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	m.dialer = gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass)
	return m
}

// NotifyReservationCreated envoie la confirmation au client et un avis à
// l'adresse opérateur. À appeler depuis une goroutine, après le commit.
func (m *Mailer) NotifyReservationCreated(user *models.User, reservation *models.Reservation) {
	subject := "Confirmation de votre réservation"
	body := fmt.Sprintf(
		"Bonjour %s,\n\nVotre réservation pour %d couverts le %s est enregistrée (statut : %s).\n\nÀ bientôt !",
		user.Prenom,
		reservation.NombreCouverts,
		reservation.Horaire.Format("02/01/2006 à 15:04"),
		reservation.Status,
	)
	m.send(user.Email, subject, body)

	operatorBody := fmt.Sprintf(
		"Nouvelle réservation #%d : %s %s, %d couverts le %s.",
		reservation.ID,
		user.Prenom, user.Nom,
		reservation.NombreCouverts,
		reservation.Horaire.Format("02/01/2006 à 15:04"),
	)
	m.send(m.operator, "Nouvelle réservation", operatorBody)
}

func (m *Mailer) send(to, subject, body string) {
	if m.dialer == nil {
		utils.InfoLogger.Printf("mailer disabled, skipping mail to %s (%s)", to, subject)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		utils.ErrorLogger.Printf("failed to send mail to %s: %v", to, err)
	}
}
