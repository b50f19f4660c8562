package console

import "github.com/pettrack/console/model"

// DefaultPages returns the page descriptors for every entity the
// console manages. Slugs double as route segments and API paths.
func DefaultPages() []ResourcePage {
	return []ResourcePage{
		{
			Slug:     "animals",
			Title:    "Animais",
			Singular: "Animal",
			Columns: []Column{
				{Key: "name", Label: "Nome"},
				{Key: "specie", Label: "Espécie"},
				{Key: "breed", Label: "Raça"},
				{Key: "sex", Label: "Sexo", Options: model.AnimalSexLabels},
				{Key: "weight", Label: "Peso (kg)"},
			},
			Fields: []Field{
				{Key: "name", Label: "Nome", Type: "text", Required: true},
				{Key: "specie", Label: "Espécie", Type: "text", Required: true},
				{Key: "breed", Label: "Raça", Type: "text"},
				{Key: "sex", Label: "Sexo", Type: "select", Options: model.AnimalSexLabels},
				{Key: "birthDate", Label: "Data de nascimento", Type: "date"},
				{Key: "weight", Label: "Peso (kg)", Type: "number"},
			},
		},
		{
			Slug:     "species",
			Title:    "Espécies",
			Singular: "Espécie",
			Columns: []Column{
				{Key: "name", Label: "Nome"},
			},
			Fields: []Field{
				{Key: "name", Label: "Nome", Type: "text", Required: true},
			},
		},
		{
			Slug:     "breeds",
			Title:    "Raças",
			Singular: "Raça",
			Columns: []Column{
				{Key: "name", Label: "Nome"},
				{Key: "specieId", Label: "Espécie"},
			},
			Fields: []Field{
				{Key: "name", Label: "Nome", Type: "text", Required: true},
				{Key: "specieId", Label: "Espécie", Type: "text", Required: true},
			},
		},
		{
			Slug:     "devices",
			Title:    "Dispositivos",
			Singular: "Dispositivo",
			Columns: []Column{
				{Key: "serialNumber", Label: "Número de série"},
				{Key: "model", Label: "Modelo"},
				{Key: "status", Label: "Status", Options: model.DeviceStatusLabels},
				{Key: "type", Label: "Tipo"},
				{Key: "batteryLevel", Label: "Bateria (%)"},
			},
			Fields: []Field{
				{Key: "serialNumber", Label: "Número de série", Type: "text", Required: true},
				{Key: "model", Label: "Modelo", Type: "text", Required: true},
				{Key: "status", Label: "Status", Type: "select", Options: model.DeviceStatusLabels, Required: true},
				{Key: "type", Label: "Tipo", Type: "select", Options: map[string]string{
					model.DeviceNode:    "Nó",
					model.DeviceGateway: "Gateway",
				}},
				{Key: "batteryLevel", Label: "Bateria (%)", Type: "number"},
				{Key: "gatewayId", Label: "Gateway", Type: "text"},
				{Key: "animalId", Label: "Animal", Type: "text"},
				{Key: "activationDate", Label: "Data de ativação", Type: "date"},
			},
		},
		{
			Slug:     "notifications",
			Title:    "Notificações",
			Singular: "Notificação",
			Columns: []Column{
				{Key: "title", Label: "Título"},
				{Key: "message", Label: "Mensagem"},
				{Key: "dateTime", Label: "Data"},
				{Key: "read", Label: "Lida"},
			},
			Fields: []Field{
				{Key: "title", Label: "Título", Type: "text", Required: true},
				{Key: "message", Label: "Mensagem", Type: "textarea", Required: true},
				{Key: "userId", Label: "Usuário", Type: "text", Required: true},
				{Key: "read", Label: "Lida", Type: "checkbox"},
			},
		},
		{
			Slug:     "telemetries",
			Title:    "Telemetrias",
			Singular: "Telemetria",
			Columns: []Column{
				{Key: "topic", Label: "Tópico"},
				{Key: "deviceId", Label: "Dispositivo"},
				{Key: "message.temperature", Label: "Temperatura"},
				{Key: "message.heartRate", Label: "Batimentos"},
				{Key: "message.behavior", Label: "Comportamento"},
			},
			Fields: []Field{
				{Key: "topic", Label: "Tópico", Type: "text", Required: true},
				{Key: "deviceId", Label: "Dispositivo", Type: "text", Required: true},
				{Key: "message.temperature", Label: "Temperatura", Type: "number"},
				{Key: "message.heartRate", Label: "Batimentos", Type: "number"},
				{Key: "message.behavior", Label: "Comportamento", Type: "text", Required: true},
				{Key: "message.latitude", Label: "Latitude", Type: "number"},
				{Key: "message.longitude", Label: "Longitude", Type: "number"},
				{Key: "message.altitude", Label: "Altitude", Type: "number"},
				{Key: "message.speed", Label: "Velocidade", Type: "number"},
			},
		},
		{
			Slug:     "users",
			Title:    "Usuários",
			Singular: "Usuário",
			Columns: []Column{
				{Key: "name", Label: "Nome"},
				{Key: "email", Label: "Email"},
				{Key: "role", Label: "Papel", Options: model.RoleLabels},
				{Key: "phone", Label: "Telefone"},
			},
			Fields: []Field{
				{Key: "name", Label: "Nome", Type: "text", Required: true},
				{Key: "email", Label: "Email", Type: "text", Required: true},
				{Key: "role", Label: "Papel", Type: "select", Options: model.RoleLabels, Required: true},
				{Key: "phone", Label: "Telefone", Type: "text"},
			},
		},
	}
}
