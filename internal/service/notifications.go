package service

import (
	"fmt"

	"github.com/dtroode/paperdesk/internal/model"
)

func otpMessage(pending model.PendingAccount) model.Message {
	return model.Message{
		To:      pending.Email,
		Subject: "Your verification code",
		Body: fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\nIt expires in %d minutes.\n",
			pending.FullName, pending.OTP, int(model.OTPValidity.Minutes())),
	}
}

func paperSubmittedMessage(paper model.Paper, adminEmail string) model.Message {
	return model.Message{
		From:    paper.Email,
		To:      adminEmail,
		Subject: "New Paper Submitted",
		Body: fmt.Sprintf("A new paper titled %q has been submitted by %s (%s).",
			paper.Title, paper.FullName, paper.Email),
	}
}

func paperUpdatedMessage(paper model.Paper, actor model.Identity, adminEmail string) model.Message {
	return model.Message{
		From:    adminEmail,
		To:      paper.Email,
		Subject: "Paper Updated",
		Body: fmt.Sprintf("The paper titled %q was updated by %s (%s). Status has been reset to SUBMITTED for review.",
			paper.Title, actor.FullName, actor.Email),
	}
}

func paperStatusMessage(paper model.Paper, adminEmail string) model.Message {
	return model.Message{
		From:    adminEmail,
		To:      paper.Email,
		Subject: fmt.Sprintf("Status Update for Your Paper %q", paper.Title),
		Body: fmt.Sprintf("Hello %s,\n\nYour paper titled %q has been updated by the admin.\nThe new status of your paper is: %s.\n\nRegards,\nConference Team",
			paper.FullName, paper.Title, paper.Status),
	}
}
