package playbook

import (
	"strings"

	"github.com/sells-group/playbook-cli/internal/model"
)

const emailSignature = `Best regards,
[Your Name]
Customer Success Manager
[Phone] | [Email]`

type emailCopy struct {
	subject string
	body    string
}

var toneEmails = map[model.Tone]emailCopy{
	model.ToneUrgent: {
		subject: "Urgent: Addressing Your Recent {customerName} Concern",
		body: `Dear {contactName},

I'm reaching out about {customSignal}. I understand how much this affects your team, and resolving it is my top priority.

Here is what is happening right now:
- Your case has been escalated to our specialist team
- We are investigating the root cause
- You will get an update from me at least every 24 hours until this is resolved

I'll call you within the next 2 hours to walk through the plan. In the meantime, please reach out to me directly with anything you need.

` + emailSignature,
	},
	model.ToneExecutive: {
		subject: "Strategic Partnership Discussion - {customerName}",
		body: `Dear {contactName},

I'd like to set up time to discuss how our partnership can best support {customerName}'s priorities over the coming quarters.

I'll bring a short summary of the value delivered so far and a proposal for where we can have the most impact next. Would 30 minutes in the next two weeks work for you?

` + emailSignature,
	},
	model.ToneConsultative: {
		subject: "Getting More Value from the Platform - {customerName}",
		body: `Hi {contactName},

I've been reviewing how your team uses the platform and I see a few opportunities to make it work harder for {customerName}.

I'd like to share what we're seeing, hear what has changed on your side, and agree on two or three concrete steps together. Do you have 30 minutes this week?

` + emailSignature,
	},
	model.ToneEmpathetic: {
		subject: "We're Sorry - Making This Right for {customerName}",
		body: `Dear {contactName},

I'm sorry for the trouble this has caused you and your team. This is not the experience we want {customerName} to have, and I take personal ownership of putting it right.

I'm working with our internal teams now and will come back to you with a clear resolution and timeline. If it helps to talk it through, I'm happy to jump on a call at a time that suits you.

` + emailSignature,
	},
	model.ToneRelationshipBuilding: {
		subject: "Strengthening Our Partnership - {customerName}",
		body: `Hi {contactName},

I wanted to check in and hear how things are going for you and the {customerName} team. Your feedback shapes how we support you, and I want to make sure we're focused on what matters most to you.

Could we find 30 minutes in the next week to talk through your goals and any concerns?

` + emailSignature,
	},
	model.ToneFriendly: {
		subject: "Checking In - {customerName}",
		body: `Hi {contactName},

I hope things are going well! I wanted to reach out and see how we can help {customerName} get the most out of the platform.

I've put together a few ideas and would love to hear your thoughts. Would a quick 15-minute call this week work?

` + emailSignature,
	},
}

var defaultEmail = emailCopy{
	subject: "Partnership Update - {customerName}",
	body: `Hi {contactName},

I wanted to reach out about your account. I've prepared a plan to address the current situation together and would like to schedule a short call to discuss next steps.

` + emailSignature,
}

var followUpEmail = emailCopy{
	subject: "Following Up: Next Steps for {customerName}",
	body: `Hi {contactName},

Thank you for your time recently. As promised, here is a quick recap of where things stand for {customerName} and the next steps we agreed on.

Please let me know if anything has changed on your side or if there is anything else I can help with.

` + emailSignature,
}

// buildCommunication picks the email copy for the tone and resolves
// placeholders. The urgent body names the reported signal; when none was
// given a neutral phrase stands in.
func buildCommunication(cc model.CustomerContext, tone model.Tone) model.EmailTemplate {
	msg, ok := toneEmails[tone]
	if !ok {
		msg = defaultEmail
	}

	signal := strings.TrimRight(strings.TrimSpace(cc.CustomSignal), ". ")
	if signal == "" {
		signal = "the issue you raised with us"
	}
	withSignal := cc
	withSignal.CustomSignal = signal
	in := newInterpolator(withSignal)

	return model.EmailTemplate{
		Subject:         in.apply(msg.subject),
		Body:            in.apply(msg.body),
		Tone:            tone,
		FollowUpSubject: in.apply(followUpEmail.subject),
		FollowUpBody:    in.apply(followUpEmail.body),
	}
}
