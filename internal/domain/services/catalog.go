package services

// SampleCatalog devuelve las 8 filas fijas del catálogo de ejemplo.
// Se insertan con upsert en cada arranque (ids estables "1".."8").
func SampleCatalog() []VeterinaryService {
	return []VeterinaryService{
		{
			ID:               "1",
			Name:             "Consulta General",
			ShortDescription: "Revisión médica completa de tu mascota",
			Description:      "Consulta veterinaria general que incluye examen físico completo, revisión de signos vitales, evaluación de comportamiento y recomendaciones de salud. Ideal para chequeos rutinarios y seguimiento del bienestar de tu mascota.",
			Price:            25000,
			Duration:         30,
			Category:         "Consulta",
			IsAvailable:      true,
		},
		{
			ID:               "2",
			Name:             "Vacunación",
			ShortDescription: "Aplicación de vacunas esenciales",
			Description:      "Servicio de vacunación completo que incluye la aplicación de vacunas esenciales según el calendario de inmunización. Protege a tu mascota contra enfermedades virales y bacterianas comunes. Incluye certificado de vacunación.",
			Price:            15000,
			Duration:         20,
			Category:         "Prevención",
			IsAvailable:      true,
		},
		{
			ID:               "3",
			Name:             "Desparasitación",
			ShortDescription: "Tratamiento contra parásitos internos y externos",
			Description:      "Tratamiento completo para eliminar parásitos internos (lombrices) y externos (pulgas, garrapatas). Incluye evaluación del estado de salud, aplicación del tratamiento y recomendaciones de prevención.",
			Price:            12000,
			Duration:         15,
			Category:         "Prevención",
			IsAvailable:      true,
		},
		{
			ID:               "4",
			Name:             "Baño y Peluquería",
			ShortDescription: "Servicio completo de estética canina",
			Description:      "Servicio de estética que incluye baño con shampoo especializado, secado, corte de pelo según raza, limpieza de oídos, corte de uñas y perfumado. Tu mascota quedará limpia, bonita y con olor agradable.",
			Price:            20000,
			Duration:         60,
			Category:         "Estética",
			IsAvailable:      true,
		},
		{
			ID:               "5",
			Name:             "Cirugía de Esterilización",
			ShortDescription: "Procedimiento quirúrgico para esterilizar",
			Description:      "Cirugía de esterilización (castración o ovariohisterectomía) realizada por veterinario especializado. Incluye pre-operatorio, anestesia general, cirugía, recuperación post-operatoria y medicamentos. Contribuye al control poblacional y previene enfermedades.",
			Price:            80000,
			Duration:         120,
			Category:         "Cirugía",
			IsAvailable:      true,
		},
		{
			ID:               "6",
			Name:             "Consulta Especializada",
			ShortDescription: "Atención con médico especialista",
			Description:      "Consulta con médico veterinario especializado en áreas específicas como dermatología, cardiología, oftalmología u ortopedia. Incluye evaluación detallada, diagnóstico especializado y plan de tratamiento personalizado.",
			Price:            45000,
			Duration:         45,
			Category:         "Especializada",
			IsAvailable:      true,
		},
		{
			ID:               "7",
			Name:             "Exámenes de Laboratorio",
			ShortDescription: "Análisis clínicos y diagnósticos",
			Description:      "Servicio de laboratorio que incluye análisis de sangre, orina, heces y otros estudios diagnósticos. Permite detectar enfermedades de forma temprana y monitorear la salud de tu mascota. Resultados en 24-48 horas.",
			Price:            35000,
			Duration:         30,
			Category:         "Diagnóstico",
			IsAvailable:      true,
		},
		{
			ID:               "8",
			Name:             "Urgencias 24/7",
			ShortDescription: "Atención de emergencia las 24 horas",
			Description:      "Servicio de urgencias veterinarias disponible las 24 horas del día, los 7 días de la semana. Atención inmediata para casos de emergencia como accidentes, intoxicaciones, dificultad respiratoria o síntomas graves. Equipo médico siempre disponible.",
			Price:            50000,
			Duration:         60,
			Category:         "Urgencia",
			IsAvailable:      true,
		},
	}
}
