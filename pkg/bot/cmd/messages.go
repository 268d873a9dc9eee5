package cmd

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The bot only speaks French; the keys document what each
// message says.
const (
	msgNoTeams         = "Create a team before trying to join one."
	msgSelectJoinEvent = "Select the event you want to join."
	msgSelectJoinTeam  = "Select the team you want to join."
	msgJoined          = "You have been added to the team: %s"
	msgNotJoined       = "You have not been added to the team: %v"
	msgNoTeamLeft      = "No team is available anymore."
	msgNotSaved        = "You have not been added to the team: the event could not be saved."

	msgNotMember        = "You are not a member of any team."
	msgSelectLeaveEvent = "Select the event of the team you want to leave."
	msgSelectLeaveTeam  = "Select the team you want to leave."
	msgLeft             = "You left the team: %s"

	msgNoScheduledEvent  = "There is no scheduled event to register."
	msgSelectRegister    = "Select the event to register."
	msgRegistered        = "The event %s has been registered."
	msgNoRegisteredEvent = "There is no registered event."
	msgSelectUnregister  = "Select the event to unregister."
	msgUnregistered      = "The event %s has been unregistered."
	msgRegisterFirst     = "Register an event before creating a team."
	msgSelectCreateEvent = "Select the event of the team."
	msgTeamCreated       = "The team %s has been created."
	msgNoTeamToDelete    = "There is no team to delete."
	msgSelectDeleteEvent = "Select the event of the team to delete."
	msgSelectDeleteTeam  = "Select the team to delete."
	msgTeamDeleted       = "The team %s has been deleted."
	msgHackathonChannel  = "The hackathon channel is now <#%s>."
	msgHackathonCategory = "The hackathon category is now <#%s>."
	msgInvalidChannel    = "Invalid channel."
	msgInvalidCapacity   = "The capacity must be between 0 and %d."
)

var french = map[string]string{
	msgNoTeams:         "Veuillez créer une équipe avant d'essayer de rejoindre une équipe.",
	msgSelectJoinEvent: "Sélectionnez l'événement que vous voulez rejoindre.",
	msgSelectJoinTeam:  "Sélectionnez l'équipe que vous voulez rejoindre.",
	msgJoined:          "Vous avez été rajouté à l'équipe: %s",
	msgNotJoined:       "Vous n'avez pas été rajouté à l'équipe: %v",
	msgNoTeamLeft:      "Aucune équipe n'est plus disponible.",
	msgNotSaved:        "Vous n'avez pas été rajouté à l'équipe: l'événement n'a pas pu être enregistré.",

	msgNotMember:        "Vous n'êtes membre d'aucune équipe.",
	msgSelectLeaveEvent: "Sélectionnez l'événement de l'équipe que vous voulez quitter.",
	msgSelectLeaveTeam:  "Sélectionnez l'équipe que vous voulez quitter.",
	msgLeft:             "Vous avez quitté l'équipe: %s",

	msgNoScheduledEvent:  "Il n'y a aucun événement à enregistrer.",
	msgSelectRegister:    "Sélectionnez l'événement à enregistrer.",
	msgRegistered:        "L'événement %s a été enregistré.",
	msgNoRegisteredEvent: "Il n'y a aucun événement enregistré.",
	msgSelectUnregister:  "Sélectionnez l'événement à retirer.",
	msgUnregistered:      "L'événement %s a été retiré.",
	msgRegisterFirst:     "Veuillez enregistrer un événement avant de créer une équipe.",
	msgSelectCreateEvent: "Sélectionnez l'événement de l'équipe.",
	msgTeamCreated:       "L'équipe %s a été créée.",
	msgNoTeamToDelete:    "Il n'y a aucune équipe à supprimer.",
	msgSelectDeleteEvent: "Sélectionnez l'événement de l'équipe à supprimer.",
	msgSelectDeleteTeam:  "Sélectionnez l'équipe à supprimer.",
	msgTeamDeleted:       "L'équipe %s a été supprimée.",
	msgHackathonChannel:  "Le salon du hackathon est maintenant <#%s>.",
	msgHackathonCategory: "La catégorie du hackathon est maintenant <#%s>.",
	msgInvalidChannel:    "Salon invalide.",
	msgInvalidCapacity:   "La capacité doit être comprise entre 0 et %d.",
}

func init() {
	for key, msg := range french {
		if err := message.SetString(language.French, key, msg); err != nil {
			panic(err)
		}
	}
}

// NewPrinter returns the printer of the bot messages.
func NewPrinter() *message.Printer {
	return message.NewPrinter(language.French)
}
