package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Конструкторы HTML тел уведомлений. Темы и тексты намеренно короткие:
// письмо должно отвечать на один вопрос - что случилось с заявкой

// SubmissionBody строит письмо о результате подачи заявки:
// какие даты приняты в рассмотрение, какие пропущены и почему
func SubmissionBody(classroomName, weekdayName string, created []time.Time, skippedHolidays, skippedConflicts []time.Time) string {
	var b strings.Builder
	b.WriteString("<h3>Reservation request received</h3>")
	fmt.Fprintf(&b, "<p>Classroom: <b>%s</b>, every <b>%s</b>.</p>", html.EscapeString(classroomName), html.EscapeString(weekdayName))

	if len(created) > 0 {
		b.WriteString("<p>The following dates are pending approval:</p>")
		writeDateList(&b, created)
	}
	if len(skippedHolidays) > 0 {
		b.WriteString("<p>Skipped public holidays:</p>")
		writeDateList(&b, skippedHolidays)
	}
	if len(skippedConflicts) > 0 {
		b.WriteString("<p>Skipped because the slot is already taken:</p>")
		writeDateList(&b, skippedConflicts)
	}

	return b.String()
}

// SubmissionFailedBody строит письмо о полностью отклоненной заявке:
// ни одна дата не прошла проверки, заявка не создана
func SubmissionFailedBody(classroomName, weekdayName string, skippedHolidays, skippedConflicts []time.Time) string {
	var b strings.Builder
	b.WriteString("<h3>Reservation request failed</h3>")
	fmt.Fprintf(&b, "<p>Classroom: <b>%s</b>, every <b>%s</b>. No valid dates remain, nothing was created.</p>",
		html.EscapeString(classroomName), html.EscapeString(weekdayName))

	if len(skippedHolidays) > 0 {
		b.WriteString("<p>Public holidays:</p>")
		writeDateList(&b, skippedHolidays)
	}
	if len(skippedConflicts) > 0 {
		b.WriteString("<p>Slot already taken:</p>")
		writeDateList(&b, skippedConflicts)
	}

	return b.String()
}

// NewRequestNoticeBody строит письмо администратору о новой заявке,
// ожидающей решения
func NewRequestNoticeBody(userEmail, classroomName, weekdayName string, created []time.Time) string {
	var b strings.Builder
	b.WriteString("<h3>New reservation request</h3>")
	fmt.Fprintf(&b, "<p>From <b>%s</b>: classroom <b>%s</b>, every <b>%s</b>, %d date(s) pending approval.</p>",
		html.EscapeString(userEmail), html.EscapeString(classroomName), html.EscapeString(weekdayName), len(created))
	writeDateList(&b, created)
	return b.String()
}

// DecisionBody строит письмо о решении администратора по одной дате
func DecisionBody(classroomName string, date time.Time, approved bool, note string) string {
	var b strings.Builder
	if approved {
		b.WriteString("<h3>Reservation approved</h3>")
	} else {
		b.WriteString("<h3>Reservation rejected</h3>")
	}
	fmt.Fprintf(&b, "<p>Classroom <b>%s</b> on <b>%s</b>.</p>",
		html.EscapeString(classroomName), date.Format("2006-01-02"))
	if note != "" {
		fmt.Fprintf(&b, "<p>Note: %s</p>", html.EscapeString(note))
	}
	return b.String()
}

// GroupDecisionBody строит письмо о решении по всей повторяющейся заявке
func GroupDecisionBody(classroomName, weekdayName string, count int, approved bool, note string) string {
	var b strings.Builder
	if approved {
		b.WriteString("<h3>Recurring reservation approved</h3>")
	} else {
		b.WriteString("<h3>Recurring reservation rejected</h3>")
	}
	fmt.Fprintf(&b, "<p>Classroom <b>%s</b>, every <b>%s</b>: %d date(s).</p>",
		html.EscapeString(classroomName), html.EscapeString(weekdayName), count)
	if note != "" {
		fmt.Fprintf(&b, "<p>Note: %s</p>", html.EscapeString(note))
	}
	return b.String()
}

// FeedbackNotificationBody строит письмо администратору о новом отзыве
func FeedbackNotificationBody(classroomName string, rating int, comment string) string {
	var b strings.Builder
	b.WriteString("<h3>New classroom feedback</h3>")
	fmt.Fprintf(&b, "<p>Classroom <b>%s</b>, rating %d/5.</p>", html.EscapeString(classroomName), rating)
	if comment != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(comment))
	}
	return b.String()
}

func writeDateList(b *strings.Builder, dates []time.Time) {
	b.WriteString("<ul>")
	for _, d := range dates {
		fmt.Fprintf(b, "<li>%s</li>", d.Format("2006-01-02"))
	}
	b.WriteString("</ul>")
}
